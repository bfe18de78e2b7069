package middlewares

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow_backend/internals/helpers/apperr"
)

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		expose  bool
		status  int
		code    string
		message string
	}{
		{"conflict", apperr.Conflict("ALREADY_CHECKED_IN", "Already checked in today"), false, 409, "ALREADY_CHECKED_IN", "Already checked in today"},
		{"wrapped not found", fmt.Errorf("load: %w", apperr.NotFound("LEAVE_NOT_FOUND", "Leave request not found")), false, 404, "LEAVE_NOT_FOUND", "Leave request not found"},
		{"fields", apperr.InvalidFields(map[string]string{"email": "invalid email format"}), false, 400, "VALIDATION_ERROR", "validation failed"},
		{"fiber error", fiber.ErrNotFound, false, 404, "NOT_FOUND", "Cannot GET /x"},
		{"timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), false, 503, "TIMEOUT", "Request timed out"},
		{"hidden internal", errors.New("dial tcp: refused"), false, 500, "INTERNAL_ERROR", "Server error"},
		{"exposed internal", errors.New("dial tcp: refused"), true, 500, "INTERNAL_ERROR", "dial tcp: refused"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{
				JSONEncoder:  sonic.Marshal,
				JSONDecoder:  sonic.Unmarshal,
				ErrorHandler: ErrorHandler(tc.expose),
			})
			app.Get("/x", func(c *fiber.Ctx) error {
				if tc.err == fiber.ErrNotFound {
					return fiber.NewError(fiber.StatusNotFound, "Cannot GET /x")
				}
				return tc.err
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var body map[string]any
			require.NoError(t, sonic.Unmarshal(raw, &body))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.code, body["error_code"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}
