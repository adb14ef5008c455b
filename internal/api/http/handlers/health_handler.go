package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-management/internal/observability"
	"github.com/spec-kit/agent-management/internal/persistence"
)

// HealthHandler serves liveness, readiness and debug metrics endpoints.
type HealthHandler struct {
	pg      *persistence.Postgres
	redis   *persistence.Redis
	metrics *observability.Metrics
}

func NewHealthHandler(pg *persistence.Postgres, rd *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{pg: pg, redis: rd, metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Checks database and redis connectivity.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	checks := fiber.Map{}
	healthy := true

	if err := h.pg.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"status": checks})
}

// Metrics GET /debug/metrics. Dumps in-memory request and error counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errs,
	})
}
