package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
)

// The doctor catalog backs the booking screen for every role, so it only
// needs authentication, not a permission tag.
func (r *Router) registerDoctorRoutes(api fiber.Router, dh *handler.DoctorHandler, authRequired fiber.Handler) {
	doctors := api.Group("/doctors", authRequired)
	doctors.Get("/", dh.List)
	doctors.Get("/:id", dh.Get)
	doctors.Get("/:id/slots", dh.Slots)
}
