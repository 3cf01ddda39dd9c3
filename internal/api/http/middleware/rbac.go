package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
	pasetotoken "github.com/clinicdesk/clinicdesk_backend/pkg/paseto"
)

// RequirePermission gates a route group on a permission tag. The check runs
// against the authenticated user's roles, so it must sit behind
// AuthRequired.
func RequirePermission(auth authorize.IAuthorization, perm authorize.Permission, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if err := auth.MustEnforce(c.Context(), claims.UserID, perm, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}
