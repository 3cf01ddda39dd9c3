package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"

	"github.com/clinicdesk/clinicdesk_backend/config"
)

// NewLimiter rate-limits by client IP with an in-memory sliding window.
// State does not survive a restart, same as everything else here.
func NewLimiter(cfg *config.Config) fiber.Handler {
	max := cfg.Server.RateLimit.Max
	if max <= 0 {
		max = 20
	}
	exp := time.Duration(cfg.Server.RateLimit.ExpirationSeconds) * time.Second
	if exp <= 0 {
		exp = 30 * time.Second
	}
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        exp,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
