package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matplanerare/matplanerare/internal/store"
	"github.com/matplanerare/matplanerare/internal/utils"
)

// AuthHandler handles session routes
type AuthHandler struct {
	Store *store.Store
}

type credentialsRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// passwordsMatch rejects a filled-in confirmation that differs.
func (r credentialsRequest) passwordsMatch() bool {
	return r.ConfirmPassword == "" || r.ConfirmPassword == r.Password
}

type sessionResponse struct {
	Username         string `json:"username"`
	IsAdmin          bool   `json:"isAdmin"`
	WasAdminOnLogout bool   `json:"wasAdminOnLogout,omitempty"`
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Authenticate a user and open the session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Username and password"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "login")
	}

	if err := h.Store.Login(req.Username, req.Password); err != nil {
		return storeErrorResponse(c, err, "login")
	}

	return utils.SuccessResponse(c, sessionResponse{
		Username: h.Store.CurrentUser(),
		IsAdmin:  h.Store.IsAdmin(),
	}, fiber.StatusOK)
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Description Create a new user account and log it in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Username and password"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "register")
	}
	if !req.passwordsMatch() {
		return utils.ErrorResponse(c, "Passwords do not match", fiber.StatusBadRequest, "register")
	}

	if err := h.Store.CreateUser(req.Username, req.Password); err != nil {
		return storeErrorResponse(c, err, "register")
	}

	return utils.SuccessResponse(c, sessionResponse{
		Username: h.Store.CurrentUser(),
		IsAdmin:  h.Store.IsAdmin(),
	}, fiber.StatusCreated)
}

// InitialPassword handles POST /api/auth/initial-password
// @Summary Set a first password
// @Description Set the password on an account that has none yet and log it in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Username and new password"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/initial-password [post]
func (h *AuthHandler) InitialPassword(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "initialPassword")
	}
	if !req.passwordsMatch() {
		return utils.ErrorResponse(c, "Passwords do not match", fiber.StatusBadRequest, "initialPassword")
	}

	if err := h.Store.SetInitialPassword(req.Username, req.Password); err != nil {
		return storeErrorResponse(c, err, "initialPassword")
	}

	return utils.SuccessResponse(c, sessionResponse{
		Username: h.Store.CurrentUser(),
		IsAdmin:  h.Store.IsAdmin(),
	}, fiber.StatusOK)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Close the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} sessionResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.Store.Logout()
	return utils.SuccessResponse(c, sessionResponse{
		WasAdminOnLogout: h.Store.WasAdminOnLogout(),
	}, fiber.StatusOK)
}

// Session handles GET /api/auth/session
// @Summary Current session
// @Description Report the current session state
// @Tags Auth
// @Produce json
// @Success 200 {object} sessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, sessionResponse{
		Username:         h.Store.CurrentUser(),
		IsAdmin:          h.Store.IsAdmin(),
		WasAdminOnLogout: h.Store.WasAdminOnLogout(),
	}, fiber.StatusOK)
}
