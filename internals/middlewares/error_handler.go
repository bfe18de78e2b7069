package middlewares

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "dayflow_backend/internals/helpers"
	"dayflow_backend/internals/helpers/apperr"
)

// ErrorHandler renders every error returned by a handler in the standard
// {success:false, message, error_code} shape. Messages of unexpected errors
// are only exposed when exposeInternal is set.
func ErrorHandler(exposeInternal bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			if ae.Kind == apperr.KindInternal {
				return internalError(c, err, exposeInternal)
			}
			if len(ae.Fields) > 0 {
				return helper.JsonValidationError(c, ae.Message, ae.Fields)
			}
			return helper.JsonError(c, ae.Kind.HTTPStatus(), ae.Code, ae.Message)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, "", fe.Message)
		}

		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[ERROR] %s %s timed out: %v", c.Method(), c.Path(), err)
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "TIMEOUT", "Request timed out")
		}

		return internalError(c, err, exposeInternal)
	}
}

func internalError(c *fiber.Ctx, err error, expose bool) error {
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	msg := "Server error"
	if expose {
		msg = err.Error()
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", msg)
}
