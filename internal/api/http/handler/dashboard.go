package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/internal/service/dashboard"
)

type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /dashboard/stats
func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return internalError(c)
	}
	return ok(c, stats)
}

// GET /dashboard/upcoming
func (h *DashboardHandler) Upcoming(c fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "limit must be a non-negative integer")
		}
		limit = n
	}
	entries, err := h.svc.Upcoming(c.Context(), limit)
	if err != nil {
		return internalError(c)
	}
	return ok(c, entries)
}
