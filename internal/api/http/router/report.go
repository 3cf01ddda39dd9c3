package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
)

func (r *Router) registerReportRoutes(
	api fiber.Router,
	rh *handler.ReportHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Permission, authorize.Action) fiber.Handler,
) {
	reports := api.Group("/reports", authRequired, requirePerm(authorize.PermReports, authorize.ActionAccess))

	reports.Get("/patients", rh.Patients)
	reports.Get("/consultations", rh.Consultations)
	reports.Get("/appointments", rh.Appointments)
	reports.Get("/financial", rh.Financial)

	// Downloads carry a separate action so export rights can be granted
	// independently of viewing.
	reports.Get("/:name/export", requirePerm(authorize.PermReports, authorize.ActionExport), rh.Export)
}
