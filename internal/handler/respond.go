package handler

import (
	"errors"

	"go-consumable-inventory/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy onto HTTP. Anything outside
// the taxonomy is an internal error and stays opaque to the caller.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  appErr.Message,
			"errors": appErr.Fields,
		})
	case apperr.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": appErr.Message})
	case apperr.KindDuplicate, apperr.KindConflict, apperr.KindTransientConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": appErr.Message})
	case apperr.KindInsufficientStock:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":            appErr.Message,
			"current_quantity": appErr.CurrentQuantity,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
