package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/service/pharmacy"
)

type PharmacyHandler struct {
	svc pharmacy.Service
}

func NewPharmacyHandler(svc pharmacy.Service) *PharmacyHandler {
	return &PharmacyHandler{svc: svc}
}

func mapPharmacyError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pharmacy.ErrConsultationNotFound),
		errors.Is(err, pharmacy.ErrMedicineNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, pharmacy.ErrAlreadyDispensed):
		return conflict(c, err.Error())
	case errors.Is(err, pharmacy.ErrInsufficientStock):
		return unprocessable(c, err.Error())
	case errors.Is(err, pharmacy.ErrNothingToDispense),
		errors.Is(err, pharmacy.ErrInvalidQuantity):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /pharmacy/queue
func (h *PharmacyHandler) Queue(c fiber.Ctx) error {
	entries, err := h.svc.Queue(c.Context())
	if err != nil {
		return mapPharmacyError(c, err)
	}
	return ok(c, entries)
}

// GET /medicines
func (h *PharmacyHandler) Medicines(c fiber.Ctx) error {
	meds, err := h.svc.Medicines(c.Context())
	if err != nil {
		return mapPharmacyError(c, err)
	}
	return ok(c, meds)
}

// POST /pharmacy/dispense
func (h *PharmacyHandler) Dispense(c fiber.Ctx) error {
	var req pharmacy.DispenseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	bill, err := h.svc.Dispense(c.Context(), req)
	if err != nil {
		return mapPharmacyError(c, err)
	}
	return created(c, bill)
}
