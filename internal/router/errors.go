package router

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ariel-nathan/chirp/internal/domain"
)

// ErrorHandler maps domain errors onto HTTP responses in one place so
// handlers can return them untouched. Anything unrecognized becomes a
// generic 500 scoped to the request.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErr *domain.ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Message,
				"field": validationErr.Field,
			})
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrRateLimited):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		default:
			slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		}
	}
}
