package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
)

func (r *Router) registerAppointmentRoutes(
	api fiber.Router,
	ah *handler.AppointmentHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Permission, authorize.Action) fiber.Handler,
) {
	appts := api.Group("/appointments", authRequired, requirePerm(authorize.PermAppointments, authorize.ActionAccess))

	appts.Get("/", ah.List)
	appts.Post("/", ah.Book)
	appts.Get("/today", ah.TodayQueue)

	a := appts.Group("/:id")
	a.Get("/", ah.Get)
	a.Patch("/start", ah.Start)
	a.Patch("/complete", ah.Complete)
	a.Patch("/cancel", ah.Cancel)
	a.Patch("/no-show", ah.MarkNoShow)
}
