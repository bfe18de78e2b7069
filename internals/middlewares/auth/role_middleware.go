package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	authService "dayflow_backend/internals/features/users/auth/service"
)

var authUnauthorized = authService.ErrUnauthorized

// OnlyRoles admits the current account when its role is one of roles.
// An empty message falls back to the generic forbidden message.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentAccount(c)
		if u == nil {
			return authUnauthorized
		}
		if u.HasRole(roles...) {
			return c.Next()
		}
		log.Printf("[WARN] role %s denied %s %s", u.Role, c.Method(), c.Path())
		return forbidden(message)
	}
}

// OnlySelfOrRoles admits the account whose id equals the route parameter
// param, or any account holding one of roles.
func OnlySelfOrRoles(param, message string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentAccount(c)
		if u == nil {
			return authUnauthorized
		}
		if u.HasRole(roles...) {
			return c.Next()
		}
		if id, err := uuid.Parse(c.Params(param)); err == nil && id == u.ID {
			return c.Next()
		}
		return forbidden(message)
	}
}

func forbidden(message string) error {
	if message == "" {
		return authService.ErrForbidden
	}
	return authService.ErrForbidden.WithMessage(message)
}
