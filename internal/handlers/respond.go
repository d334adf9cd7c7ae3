package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/services"
)

func respondOK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// respondPipelineError maps the pipeline sentinel errors onto HTTP statuses.
// Anything unrecognized is treated as an internal error.
func respondPipelineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		return respondError(c, fiber.StatusBadRequest, "unsupported_format", err.Error())
	case errors.Is(err, services.ErrExtractionFailed):
		return respondError(c, fiber.StatusUnprocessableEntity, "extraction_failed", err.Error())
	case errors.Is(err, services.ErrEmbeddingFailed):
		return respondError(c, fiber.StatusBadGateway, "embedding_failed", err.Error())
	default:
		return respondError(c, fiber.StatusInternalServerError, "internal_error", err.Error())
	}
}
