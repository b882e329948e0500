package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/matplanerare/matplanerare/internal/config"
	"github.com/matplanerare/matplanerare/internal/services"
)

// HealthHandler handles the liveness route
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// Health handles GET /api/health
// @Summary Health check
// @Description Report database and remote store reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
