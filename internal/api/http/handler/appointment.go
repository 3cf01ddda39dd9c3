package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/appointment"
)

type AppointmentHandler struct {
	svc appointment.Service
}

func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, appointment.ErrPatientNotFound),
		errors.Is(err, appointment.ErrDoctorNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrSlotTaken):
		return conflict(c, err.Error())
	case errors.Is(err, appointment.ErrTerminalState),
		errors.Is(err, appointment.ErrInvalidTransition):
		return unprocessable(c, err.Error())
	case errors.Is(err, appointment.ErrInvalidDate),
		errors.Is(err, appointment.ErrSlotRequired),
		errors.Is(err, appointment.ErrReasonRequired),
		errors.Is(err, appointment.ErrInvalidPriority):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /appointments
func (h *AppointmentHandler) List(c fiber.Ctx) error {
	req := appointment.ListRequest{
		PatientID: c.Query("patient_id"),
		DoctorID:  c.Query("doctor_id"),
		Date:      c.Query("date"),
		Status:    model.AppointmentStatus(c.Query("status")),
	}
	appts, err := h.svc.List(c.Context(), req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appts)
}

// POST /appointments
func (h *AppointmentHandler) Book(c fiber.Ctx) error {
	var req appointment.BookRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	appt, err := h.svc.Book(c.Context(), req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, appt)
}

// GET /appointments/today
func (h *AppointmentHandler) TodayQueue(c fiber.Ctx) error {
	entries, err := h.svc.TodayQueue(c.Context())
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, entries)
}

// GET /appointments/:id
func (h *AppointmentHandler) Get(c fiber.Ctx) error {
	appt, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}

// PATCH /appointments/:id/start
func (h *AppointmentHandler) Start(c fiber.Ctx) error {
	return h.applyTransition(c, h.svc.Start)
}

// PATCH /appointments/:id/complete
func (h *AppointmentHandler) Complete(c fiber.Ctx) error {
	return h.applyTransition(c, h.svc.Complete)
}

// PATCH /appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c fiber.Ctx) error {
	return h.applyTransition(c, h.svc.Cancel)
}

// PATCH /appointments/:id/no-show
func (h *AppointmentHandler) MarkNoShow(c fiber.Ctx) error {
	return h.applyTransition(c, h.svc.MarkNoShow)
}

func (h *AppointmentHandler) applyTransition(c fiber.Ctx, fn func(ctx context.Context, id string) (*model.Appointment, error)) error {
	appt, err := fn(c.Context(), c.Params("id"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appt)
}
