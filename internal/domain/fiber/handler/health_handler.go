package handler

import (
	"time"

	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

const healthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.Health)
}

// Health answers as long as the process is up; it does not touch the database.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return util.SuccessResponse(c, fiber.StatusOK, dto.HealthResponse{
		Message:   "Backend is running successfully!",
		Timestamp: h.now().UTC().Format(healthTimestampLayout),
	})
}
