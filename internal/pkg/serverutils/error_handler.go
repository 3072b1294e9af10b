// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"fixzit-be/pkg/aggregate"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping handlers into JSON
// responses. A missing tenant context is a programming bug in the caller,
// surfaced as 500 so it is never mistaken for user error.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		case errors.Is(err, aggregate.ErrMissingTenantContext):
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal error: request reached storage without tenant context"))
		case errors.Is(err, aggregate.ErrMissingBypassAudit):
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal error: cross-tenant query without audit context"))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
		}
	}
}
