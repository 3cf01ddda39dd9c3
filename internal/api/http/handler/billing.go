package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/service/billing"
)

type BillingHandler struct {
	svc billing.Service
}

func NewBillingHandler(svc billing.Service) *BillingHandler {
	return &BillingHandler{svc: svc}
}

func mapBillingError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, billing.ErrBillNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, billing.ErrAlreadyPaid):
		return conflict(c, err.Error())
	case errors.Is(err, billing.ErrOverpayment):
		return unprocessable(c, err.Error())
	case errors.Is(err, billing.ErrInvalidAmount),
		errors.Is(err, billing.ErrInvalidMethod):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /bills
func (h *BillingHandler) List(c fiber.Ctx) error {
	bills, err := h.svc.List(c.Context())
	if err != nil {
		return mapBillingError(c, err)
	}
	return ok(c, bills)
}

// GET /bills/pending
func (h *BillingHandler) Pending(c fiber.Ctx) error {
	bills, err := h.svc.Pending(c.Context())
	if err != nil {
		return mapBillingError(c, err)
	}
	return ok(c, bills)
}

// GET /bills/:id
func (h *BillingHandler) Get(c fiber.Ctx) error {
	bill, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapBillingError(c, err)
	}
	return ok(c, bill)
}

// POST /bills/:id/pay
func (h *BillingHandler) Pay(c fiber.Ctx) error {
	var req billing.PaymentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	bill, err := h.svc.ProcessPayment(c.Context(), c.Params("id"), req)
	if err != nil {
		return mapBillingError(c, err)
	}
	return ok(c, bill)
}
