package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matplanerare/matplanerare/internal/generate"
	"github.com/matplanerare/matplanerare/internal/utils"
)

// GenerateHandler proxies recipe generation to the upstream model
type GenerateHandler struct {
	Client *generate.Client
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate handles POST /api/generate
// @Summary Generate a recipe
// @Description Generate a complete recipe in Swedish for the described dish
// @Tags Generate
// @Accept json
// @Produce json
// @Param body body generateRequest true "Dish prompt"
// @Success 200 {object} generate.GeneratedRecipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /generate [post]
func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	if h.Client == nil {
		return utils.ErrorResponse(c, "Recipe generation is not configured",
			fiber.StatusServiceUnavailable, "generate")
	}

	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "generate")
	}
	if req.Prompt == "" {
		return utils.ErrorResponse(c, "prompt is required", fiber.StatusBadRequest, "generate")
	}

	recipe, err := h.Client.GenerateRecipe(c.Context(), req.Prompt)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "generate")
	}
	return utils.SuccessResponse(c, recipe, fiber.StatusOK)
}
