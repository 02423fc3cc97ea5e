package serverutils

import (
	"errors"

	"ai-commerce-chat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorHandlerMiddleware converts errors bubbled out of controllers into
// JSON responses with a stable shape.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		var creditsErr *dto.InsufficientCreditsError

		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &creditsErr):
			status = fiber.StatusPaymentRequired
			message = creditsErr.Error()
		case errors.Is(err, dto.ErrStoreNotFound),
			errors.Is(err, dto.ErrSessionNotFound),
			errors.Is(err, dto.ErrCampaignNotFound),
			errors.Is(err, dto.ErrProductNotFound),
			errors.Is(err, dto.ErrTopupNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, dto.ErrStoreInactive):
			status = fiber.StatusForbidden
			message = err.Error()
		case errors.Is(err, dto.ErrInvalidSignature):
			status = fiber.StatusUnauthorized
			message = err.Error()
		}

		return ctx.Status(status).JSON(errorResponse{
			Success: false,
			Message: message,
		})
	}
}
