package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
)

func (r *Router) registerPatientRoutes(
	api fiber.Router,
	ph *handler.PatientHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Permission, authorize.Action) fiber.Handler,
) {
	patients := api.Group("/patients", authRequired, requirePerm(authorize.PermPatientManagement, authorize.ActionAccess))

	patients.Get("/", ph.List)
	patients.Post("/", ph.Register)

	// The intake desk keeps one patient "selected" while working a visit.
	patients.Get("/current", ph.Current)
	patients.Delete("/current", ph.ClearCurrent)

	p := patients.Group("/:id")
	p.Get("/", ph.Get)
	p.Patch("/", ph.Update)
	p.Post("/id-proof", ph.UploadIDProof)
	p.Post("/select", ph.Select)
}
