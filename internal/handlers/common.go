package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matplanerare/matplanerare/internal/store"
	"github.com/matplanerare/matplanerare/internal/types"
	"github.com/matplanerare/matplanerare/internal/utils"
)

// ErrorHandler handles errors globally
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// storeErrorResponse maps command errors onto the HTTP error envelope.
func storeErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, store.ErrInvalidCredentials),
		errors.Is(err, store.ErrNotLoggedIn):
		status = fiber.StatusUnauthorized
	case errors.Is(err, store.ErrDuplicateUsername):
		status = fiber.StatusConflict
	case errors.Is(err, store.ErrWeakPassword),
		errors.Is(err, store.ErrPasswordAlreadySet),
		errors.Is(err, store.ErrEmptyField):
		status = fiber.StatusBadRequest
	case errors.Is(err, store.ErrUnknownUser),
		errors.Is(err, store.ErrUnknownRecipe):
		status = fiber.StatusNotFound
	}

	return utils.ErrorResponse(c, err.Error(), status, errorType)
}

// currentUser reads the username the auth middleware stored in context.
func currentUser(c *fiber.Ctx) string {
	if user, ok := c.Locals("user").(string); ok {
		return user
	}
	return ""
}
