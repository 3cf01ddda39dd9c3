package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/service/report"
	"github.com/clinicdesk/clinicdesk_backend/pkg/docgen"
)

type ReportHandler struct {
	svc report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func mapReportError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, report.ErrUnknownReport):
		return notFound(c, err.Error())
	case errors.Is(err, docgen.ErrUnsupported):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, report.ErrUnknownFormat),
		errors.Is(err, report.ErrInvalidRange):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

func reportFilter(c fiber.Ctx) report.Filter {
	return report.Filter{
		Name: c.Query("name"),
		From: c.Query("from"),
		To:   c.Query("to"),
	}
}

// GET /reports/patients
func (h *ReportHandler) Patients(c fiber.Ctx) error {
	rows, err := h.svc.Patients(c.Context(), reportFilter(c))
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /reports/consultations
func (h *ReportHandler) Consultations(c fiber.Ctx) error {
	rows, err := h.svc.Consultations(c.Context(), reportFilter(c))
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /reports/appointments
func (h *ReportHandler) Appointments(c fiber.Ctx) error {
	rows, err := h.svc.Appointments(c.Context(), reportFilter(c))
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /reports/financial
func (h *ReportHandler) Financial(c fiber.Ctx) error {
	rows, err := h.svc.Financial(c.Context(), reportFilter(c))
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /reports/:name/export
func (h *ReportHandler) Export(c fiber.Ctx) error {
	format := c.Query("format", "csv")
	doc, err := h.svc.Export(c.Context(), c.Params("name"), format, reportFilter(c))
	if err != nil {
		return mapReportError(c, err)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Send(doc.Data)
}
