package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
)

func (r *Router) registerBillingRoutes(
	api fiber.Router,
	bh *handler.BillingHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Permission, authorize.Action) fiber.Handler,
) {
	bills := api.Group("/bills", authRequired, requirePerm(authorize.PermBilling, authorize.ActionAccess))

	bills.Get("/", bh.List)
	bills.Get("/pending", bh.Pending)
	bills.Get("/:id", bh.Get)
	bills.Post("/:id/pay", bh.Pay)
}
