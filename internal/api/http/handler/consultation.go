package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/service/consultation"
)

type ConsultationHandler struct {
	svc consultation.Service
}

func NewConsultationHandler(svc consultation.Service) *ConsultationHandler {
	return &ConsultationHandler{svc: svc}
}

func mapConsultationError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, consultation.ErrConsultationNotFound),
		errors.Is(err, consultation.ErrAppointmentNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, consultation.ErrAlreadyConsulted):
		return conflict(c, err.Error())
	case errors.Is(err, consultation.ErrAppointmentClosed):
		return unprocessable(c, err.Error())
	case errors.Is(err, consultation.ErrDiagnosisRequired),
		errors.Is(err, consultation.ErrInvalidPrescription):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /consultations
func (h *ConsultationHandler) List(c fiber.Ctx) error {
	req := consultation.ListRequest{
		PatientID: c.Query("patient_id"),
		DoctorID:  c.Query("doctor_id"),
	}
	cons, err := h.svc.List(c.Context(), req)
	if err != nil {
		return mapConsultationError(c, err)
	}
	return ok(c, cons)
}

// POST /consultations/start/:appointmentId
func (h *ConsultationHandler) Start(c fiber.Ctx) error {
	appt, err := h.svc.Start(c.Context(), c.Params("appointmentId"))
	if err != nil {
		return mapConsultationError(c, err)
	}
	return ok(c, appt)
}

// POST /consultations
func (h *ConsultationHandler) Save(c fiber.Ctx) error {
	var req consultation.SaveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cons, err := h.svc.Save(c.Context(), req)
	if err != nil {
		return mapConsultationError(c, err)
	}
	return created(c, cons)
}

// PUT /consultations/:id
func (h *ConsultationHandler) Update(c fiber.Ctx) error {
	var req consultation.UpdateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cons, err := h.svc.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return mapConsultationError(c, err)
	}
	return ok(c, cons)
}

// GET /consultations/:id
func (h *ConsultationHandler) Get(c fiber.Ctx) error {
	cons, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapConsultationError(c, err)
	}
	return ok(c, cons)
}
