package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/matplanerare/matplanerare/internal/services"
	"github.com/matplanerare/matplanerare/internal/store"
	"github.com/matplanerare/matplanerare/internal/utils"
)

// DataHandler handles bulk aggregate and partial-write routes
type DataHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

// GetAppData handles GET /api/data
// @Summary Get the whole aggregate
// @Description Get users, recipes, meal plans and settings in one response
// @Tags Data
// @Produce json
// @Success 200 {object} store.AppData
// @Router /data [get]
func (h *DataHandler) GetAppData(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.Snapshot(), fiber.StatusOK)
}

// UpdateDocument handles POST /api/data/update
// @Summary Apply a partial document write
// @Description Merge fields into one stored document, or delete it
// @Tags Data
// @Accept json
// @Produce json
// @Param body body services.UpdateInput true "Partial write"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /data/update [post]
func (h *DataHandler) UpdateDocument(c *fiber.Ctx) error {
	var in services.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateDocument")
	}
	if in.Collection == "" || in.DocID == "" {
		return utils.ErrorResponse(c, "collectionName and docId are required",
			fiber.StatusBadRequest, "updateDocument")
	}

	if err := services.UpdateDocument(h.DB, in); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateDocument")
	}
	return utils.MessageResponse(c, "Document updated")
}
