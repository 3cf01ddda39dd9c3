package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/service/appointment"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

// DoctorHandler serves the read-only doctor catalog and slot lookups.
type DoctorHandler struct {
	st   *store.Store
	appt appointment.Service
}

func NewDoctorHandler(st *store.Store, appt appointment.Service) *DoctorHandler {
	return &DoctorHandler{st: st, appt: appt}
}

// GET /doctors
func (h *DoctorHandler) List(c fiber.Ctx) error {
	return ok(c, h.st.Doctors())
}

// GET /doctors/:id
func (h *DoctorHandler) Get(c fiber.Ctx) error {
	d, err := h.st.DoctorByID(c.Params("id"))
	if err != nil {
		return notFound(c, "doctor not found")
	}
	return ok(c, d)
}

// GET /doctors/:id/slots?date=2006-01-02
func (h *DoctorHandler) Slots(c fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	slots, err := h.appt.Slots(c.Context(), c.Params("id"), date)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrDoctorNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, appointment.ErrInvalidDate):
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}
	return ok(c, slots)
}
