// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	ErrorCode string            `json:"error_code,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError writes {success:false, message, error_code}. An empty code is
// derived from the status.
func JsonError(c *fiber.Ctx, status int, code, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	if code == "" {
		code = statusToErrorCode(status)
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: code,
	})
}

// JsonValidationError: field-level validation failure (400)
func JsonValidationError(c *fiber.Ctx, message string, fieldErrors map[string]string) error {
	if strings.TrimSpace(message) == "" {
		message = "validation failed"
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fieldErrors,
	})
}

/* ===============================
   JSON responses (standard success)
=================================*/

func body(message, fallback string, payload fiber.Map) fiber.Map {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	out := fiber.Map{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		if k == "success" || k == "message" {
			continue
		}
		out[k] = v
	}
	return out
}

// JsonOK: generic success (GET detail, actions)
func JsonOK(c *fiber.Ctx, message string, payload fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(body(message, "ok", payload))
}

// JsonCreated: success for create (POST)
func JsonCreated(c *fiber.Ctx, message string, payload fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(body(message, "created", payload))
}

// JsonList: list payload plus count
func JsonList(c *fiber.Ctx, message, key string, items any, count int) error {
	return c.Status(fiber.StatusOK).JSON(body(message, "ok", fiber.Map{
		"count": count,
		key:     items,
	}))
}
