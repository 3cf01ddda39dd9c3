package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
)

func (r *Router) registerConsultationRoutes(
	api fiber.Router,
	ch *handler.ConsultationHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Permission, authorize.Action) fiber.Handler,
) {
	cons := api.Group("/consultations", authRequired, requirePerm(authorize.PermConsultation, authorize.ActionAccess))

	cons.Get("/", ch.List)
	cons.Post("/", ch.Save)
	cons.Post("/start/:appointmentId", ch.Start)
	cons.Get("/:id", ch.Get)
	cons.Put("/:id", ch.Update)
}
