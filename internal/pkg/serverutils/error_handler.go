// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"collabhub-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an application error kind to an HTTP status code.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidArgument), errors.Is(err, apperror.ErrSelfRating):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidTransition),
		errors.Is(err, apperror.ErrDuplicateRating),
		errors.Is(err, apperror.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperror.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, apperror.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber.Config ErrorHandler. Known kinds keep their message,
// anything else is reported as a generic failure.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := StatusFor(err)
	message := "Something went wrong, please try again later"
	if code != fiber.StatusInternalServerError {
		message = apperror.Message(err)
	}
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

// ErrorHandlerMiddleware converts errors returned by downstream handlers into
// the JSON envelope before fiber's default handler sees them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return ErrorHandler(ctx, err)
		}
		return nil
	}
}
