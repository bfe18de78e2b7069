// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	authService "dayflow_backend/internals/features/users/auth/service"
	"dayflow_backend/internals/features/users/user/model"
)

type TokenVerifier interface {
	Verify(raw string) (uuid.UUID, error)
}

// Gate resolves a token subject to a live account.
type Gate interface {
	Authorize(ctx context.Context, accountID uuid.UUID, allowed []string) (*model.UserModel, error)
}

// AuthMiddleware verifies the bearer token and loads the account it names.
// The role is never taken from the token: the account is re-read on every
// request so deactivation and role changes apply immediately.
func AuthMiddleware(tokens TokenVerifier, gate Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c)
		if err != nil {
			return err
		}

		accountID, err := tokens.Verify(raw)
		if err != nil {
			switch {
			case errors.Is(err, authService.ErrTokenExpired):
				log.Printf("[WARN] expired token %s %s", c.Method(), c.Path())
			default:
				log.Printf("[WARN] rejected token %s %s: %v", c.Method(), c.Path(), err)
			}
			return err
		}

		account, err := gate.Authorize(c.UserContext(), accountID, nil)
		if err != nil {
			if errors.Is(err, authService.ErrUnauthorized) {
				log.Printf("[WARN] token for missing or inactive account id=%s", accountID)
			}
			return err
		}

		setAccount(c, account)
		return c.Next()
	}
}
