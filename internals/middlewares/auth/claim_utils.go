// internals/middlewares/auth/claim_utils.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
)

const (
	localsAccount   = "account"
	localsAccountID = "user_id"
)

var (
	ErrNoToken        = apperr.Authentication("NO_TOKEN", "Not authorized, no token")
	ErrBadTokenFormat = apperr.Authentication("TOKEN_INVALID", "Not authorized, invalid token format")
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		return "", ErrNoToken
	}

	// tolerate repeated spaces and any casing of the scheme
	fields := strings.Fields(auth)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", ErrBadTokenFormat
	}
	tok := strings.Trim(fields[1], "\"'")
	if tok == "" {
		return "", ErrBadTokenFormat
	}
	return tok, nil
}

func setAccount(c *fiber.Ctx, u *model.UserModel) {
	c.Locals(localsAccount, u)
	c.Locals(localsAccountID, u.ID.String())
}

// CurrentAccount returns the account loaded by AuthMiddleware, or nil on
// routes that are not behind it.
func CurrentAccount(c *fiber.Ctx) *model.UserModel {
	u, _ := c.Locals(localsAccount).(*model.UserModel)
	return u
}

// MustAccount is CurrentAccount for handlers that only run behind
// AuthMiddleware.
func MustAccount(c *fiber.Ctx) (*model.UserModel, error) {
	u := CurrentAccount(c)
	if u == nil {
		return nil, authUnauthorized
	}
	return u, nil
}
