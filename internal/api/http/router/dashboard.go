package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
)

// Every signed-in role sees the dashboard, so no permission tag here.
func (r *Router) registerDashboardRoutes(api fiber.Router, dh *handler.DashboardHandler, authRequired fiber.Handler) {
	dash := api.Group("/dashboard", authRequired)
	dash.Get("/stats", dh.Stats)
	dash.Get("/upcoming", dh.Upcoming)
}
