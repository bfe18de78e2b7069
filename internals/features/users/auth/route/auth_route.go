// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/features/users/auth/controller"
	rateLimiter "dayflow_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth endpoints reachable without a token.
func AuthPublicRoutes(api fiber.Router, ac *controller.AuthController) {
	g := api.Group("/auth")
	g.Post("/signup", rateLimiter.SignupRateLimiter(), ac.Signup)
	g.Post("/signin", rateLimiter.SigninRateLimiter(), ac.Signin)
}

// AuthProtectedRoutes: /api/auth endpoints behind AuthMiddleware.
func AuthProtectedRoutes(api fiber.Router, ac *controller.AuthController) {
	g := api.Group("/auth")
	g.Get("/me", ac.Me)
	g.Put("/change-password", ac.ChangePassword)
}
