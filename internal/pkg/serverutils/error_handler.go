package serverutils

import (
	"errors"

	"printmob-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps business error kinds to HTTP status classes:
// validation failures to 400, missing aggregates to 404, everything else to
// a generic 500 without leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := fiber.StatusInternalServerError
		switch apperrors.KindOf(err) {
		case apperrors.KindValidation:
			status = fiber.StatusBadRequest
		case apperrors.KindNotFound:
			status = fiber.StatusNotFound
		}

		return ctx.Status(status).JSON(ErrorResponse(status, apperrors.MessageOf(err)))
	}
}
