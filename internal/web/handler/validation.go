package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a single field validation failure.
type ErrorResponse struct {
	FailedField string      `json:"field"`
	Tag         string      `json:"tag"`
	Value       interface{} `json:"value"`
}

// ValidationDetails converts a validator error into field-level details.
// Field-level validation failures are safe to disclose to the caller.
func ValidationDetails(err error) []ErrorResponse {
	var (
		validationErrors validator.ValidationErrors
		details          []ErrorResponse
	)

	if !errors.As(err, &validationErrors) {
		return nil
	}

	for _, ve := range validationErrors {
		details = append(details, ErrorResponse{
			FailedField: ve.Field(),
			Tag:         ve.Tag(),
			Value:       ve.Value(),
		})
	}

	return details
}

// UnprocessableEntity sends a 422 response with field-level details.
func UnprocessableEntity(c *fiber.Ctx, err error) error {
	details := ValidationDetails(err)
	if details == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": details,
	})
}

// NotFound sends a 404 response. Ownership misses on single resources use
// the same response as truly absent records so callers cannot enumerate
// other users' todo ids.
func NotFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"detail": what + " not found",
	})
}
