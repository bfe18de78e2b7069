package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authService "dayflow_backend/internals/features/users/auth/service"
	"dayflow_backend/internals/middlewares"
	authMw "dayflow_backend/internals/middlewares/auth"
	"dayflow_backend/internals/testutil"
)

func TestProtect_UnknownPathsAreNotFound(t *testing.T) {
	users := testutil.NewUserStore()
	tokens := authService.NewTokenService("route-secret", time.Hour)
	gate := authService.NewAuthService(users, authService.NewPasswordHasher(bcrypt.MinCost), tokens, nil, time.UTC)

	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middlewares.ErrorHandler(false),
	})
	api := app.Group("/api")
	api.Post("/auth/signin", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) })
	protected := Protect(api, authMw.AuthMiddleware(tokens, gate))
	protected.Get("/leaves/my-leaves", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) })
	protected.Get("/auth/me", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) })

	cases := []struct {
		method string
		path   string
		status int
		code   string
	}{
		{http.MethodGet, "/api/nope", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/api/auth/unknown", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/api/leaves/my-leaves", http.StatusUnauthorized, "NO_TOKEN"},
		{http.MethodGet, "/api/auth/me", http.StatusUnauthorized, "NO_TOKEN"},
		{http.MethodPost, "/api/auth/signin", http.StatusOK, ""},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, sonic.Unmarshal(raw, &body), string(raw))
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		if tc.code != "" {
			assert.Equal(t, tc.code, body["error_code"], tc.path)
		}
	}
}
