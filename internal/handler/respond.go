package handler

import (
	"errors"

	"go-retail-pos/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps the domain error kinds onto HTTP status codes:
// validation and insufficient-stock to 400, not-found to 404, conflict to
// 409, everything else (persistence included) to 500.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *model.ValidationError
	var notFoundErr *model.NotFoundError
	var stockErr *model.InsufficientStockError
	var conflictErr *model.ConflictError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Message})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      stockErr.Error(),
			"product_id": stockErr.ProductID,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflictErr.Message})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

// currentUserID reads the authenticated user's id set by RequireAuth.
func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("user_id").(uuid.UUID)
	return id, ok
}

// parseUUID parses a path or query parameter as a UUID.
func parseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
