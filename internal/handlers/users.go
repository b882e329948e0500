package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matplanerare/matplanerare/internal/store"
	"github.com/matplanerare/matplanerare/internal/utils"
)

// UsersHandler handles account administration routes
type UsersHandler struct {
	Store *store.Store
}

type renameRequest struct {
	NewName string `json:"newName"`
}

type passwordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type transferRequest struct {
	ToUser string `json:"toUser"`
}

type transferResponse struct {
	Moved int `json:"moved"`
}

type userListResponse struct {
	Users     []string `json:"users"`
	AdminUser string   `json:"adminUser,omitempty"`
}

// List handles GET /api/users
// @Summary List usernames
// @Description List all usernames, sorted, plus the admin designation
// @Tags Users
// @Produce json
// @Success 200 {object} userListResponse
// @Router /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, userListResponse{
		Users:     h.Store.Usernames(),
		AdminUser: h.Store.AdminUser(),
	}, fiber.StatusOK)
}

// Rename handles POST /api/users/:username/rename
// @Summary Rename an account
// @Description Rename an account, carrying passwords, plans, recipes and admin status along
// @Tags Users
// @Accept json
// @Produce json
// @Param username path string true "Current username"
// @Param body body renameRequest true "New username"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{username}/rename [post]
func (h *UsersHandler) Rename(c *fiber.Ctx) error {
	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "renameUser")
	}

	if err := h.Store.RenameUser(c.Params("username"), req.NewName); err != nil {
		return storeErrorResponse(c, err, "renameUser")
	}
	return utils.MessageResponse(c, "User renamed")
}

// ResetPassword handles POST /api/users/:username/password
// @Summary Reset a password
// @Description Overwrite an account's password
// @Tags Users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param body body passwordRequest true "New password"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{username}/password [post]
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req passwordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "resetPassword")
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return utils.ErrorResponse(c, "Passwords do not match", fiber.StatusBadRequest, "resetPassword")
	}

	if err := h.Store.ResetPassword(c.Params("username"), req.Password); err != nil {
		return storeErrorResponse(c, err, "resetPassword")
	}
	return utils.MessageResponse(c, "Password reset")
}

// TransferRecipes handles POST /api/users/:username/transfer
// @Summary Transfer recipe ownership
// @Description Reassign every recipe owned by the account to another user
// @Tags Users
// @Accept json
// @Produce json
// @Param username path string true "Current owner"
// @Param body body transferRequest true "Receiving username"
// @Success 200 {object} transferResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{username}/transfer [post]
func (h *UsersHandler) TransferRecipes(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "transferRecipes")
	}

	moved, err := h.Store.TransferRecipes(c.Params("username"), req.ToUser)
	if err != nil {
		return storeErrorResponse(c, err, "transferRecipes")
	}
	return utils.SuccessResponse(c, transferResponse{Moved: moved}, fiber.StatusOK)
}

// Delete handles DELETE /api/users/:username
// @Summary Delete an account
// @Description Delete an account and its meal plans; its recipes pass to the admin
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{username} [delete]
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.Store.DeleteUser(c.Params("username")); err != nil {
		return storeErrorResponse(c, err, "deleteUser")
	}
	return utils.MessageResponse(c, "User deleted")
}
