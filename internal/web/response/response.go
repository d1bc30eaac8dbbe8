// Package response implements the JSON envelope shared by all API handlers:
// {"data": ...} on success, {"message": "..."} for plain failures and
// {"errors": [...]} for field level validation failures.
package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// FieldError names a single request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Data sends a 200 success envelope.
func Data(c *fiber.Ctx, v any) error {
	return c.JSON(fiber.Map{"data": v})
}

// Created sends a 201 success envelope.
func Created(c *fiber.Ctx, v any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": v})
}

// Message sends a plain message envelope with the given status.
func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// ValidationErrors sends a 400 with the itemized field errors.
func ValidationErrors(c *fiber.Ctx, errs []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
}

// ErrorHandler renders errors returned by handlers. *fiber.Error keeps its
// status and message; anything else becomes an opaque 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Message(c, fe.Code, fe.Message)
	}

	log.Error().Err(err).Str("uri", c.OriginalURL()).Msg("unhandled request error")

	return Message(c, fiber.StatusInternalServerError, "Internal server error")
}
