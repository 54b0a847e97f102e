package handlers

import (
	"errors"
	"log"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler returns the single error boundary every handler funnels
// into. Operational errors keep their own status and safe message;
// anything else is logged and surfaced as a generic 500, with the real
// message shown only in development mode.
func NewErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperr.As(err); ok {
			if appErr.Err != nil {
				log.Printf("Operational error (%d): %v", appErr.StatusCode, appErr)
			}
			return c.Status(appErr.StatusCode).JSON(fiber.Map{
				"success": false,
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		log.Printf("Unexpected error: %v", err)
		message := "internal server error"
		if development {
			message = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}
