package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/patient"
)

// maxIDProofBytes caps uploaded identity documents.
const maxIDProofBytes = 5 << 20

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, patient.ErrNameRequired),
		errors.Is(err, patient.ErrInvalidAge),
		errors.Is(err, patient.ErrContactRequired),
		errors.Is(err, patient.ErrInvalidEmail),
		errors.Is(err, patient.ErrInvalidGender),
		errors.Is(err, patient.ErrEmptyIDProof):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /patients
func (h *PatientHandler) List(c fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		patients, err := h.svc.Search(c.Context(), q)
		if err != nil {
			return mapPatientError(c, err)
		}
		return ok(c, patients)
	}
	patients, err := h.svc.List(c.Context())
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, patients)
}

// POST /patients
func (h *PatientHandler) Register(c fiber.Ctx) error {
	var req patient.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	p, err := h.svc.Register(c.Context(), req)
	if err != nil {
		return mapPatientError(c, err)
	}
	return created(c, p)
}

// GET /patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	p, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// PATCH /patients/:id
func (h *PatientHandler) Update(c fiber.Ctx) error {
	var req patient.UpdateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	p, err := h.svc.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// POST /patients/:id/id-proof (multipart, field "file")
func (h *PatientHandler) UploadIDProof(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "multipart field 'file' is required")
	}
	if fh.Size > maxIDProofBytes {
		return badRequest(c, "file exceeds 5 MiB limit")
	}

	f, err := fh.Open()
	if err != nil {
		return internalError(c)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxIDProofBytes+1))
	if err != nil {
		return internalError(c)
	}
	if len(data) > maxIDProofBytes {
		return badRequest(c, "file exceeds 5 MiB limit")
	}

	p, err := h.svc.AttachIDProof(c.Context(), c.Params("id"), model.IDProof{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// POST /patients/:id/select
func (h *PatientHandler) Select(c fiber.Ctx) error {
	p, err := h.svc.Select(c.Context(), c.Params("id"))
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// GET /patients/current
func (h *PatientHandler) Current(c fiber.Ctx) error {
	return ok(c, h.svc.Current(c.Context()))
}

// DELETE /patients/current
func (h *PatientHandler) ClearCurrent(c fiber.Ctx) error {
	h.svc.ClearCurrent(c.Context())
	return noContent(c)
}
