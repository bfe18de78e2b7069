package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "dayflow_backend/internals/helpers"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", message)
		},
	})
}

// Global limiter: every endpoint
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, 1*time.Minute, "Too many requests. Please try again later.")
}

// Sign-in limiter (stricter)
func SigninRateLimiter() fiber.Handler {
	return newLimiter(5, 1*time.Minute, "Too many sign-in attempts. Please wait a moment.")
}

func SignupRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Too many sign-up attempts. Please wait a few minutes.")
}
