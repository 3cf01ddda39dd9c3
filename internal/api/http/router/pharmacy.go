package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/api/http/handler"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
)

func (r *Router) registerPharmacyRoutes(
	api fiber.Router,
	ph *handler.PharmacyHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Permission, authorize.Action) fiber.Handler,
) {
	pharmacy := api.Group("/pharmacy", authRequired, requirePerm(authorize.PermPharmacy, authorize.ActionAccess))
	pharmacy.Get("/queue", ph.Queue)
	pharmacy.Post("/dispense", ph.Dispense)

	medicines := api.Group("/medicines", authRequired, requirePerm(authorize.PermMedicineManagement, authorize.ActionAccess))
	medicines.Get("/", ph.Medicines)
}
