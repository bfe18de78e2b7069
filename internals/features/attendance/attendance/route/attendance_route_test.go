package route

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

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/attendance/attendance/controller"
	"dayflow_backend/internals/features/attendance/attendance/service"
	authService "dayflow_backend/internals/features/users/auth/service"
	"dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/dbtime"
	"dayflow_backend/internals/middlewares"
	authMw "dayflow_backend/internals/middlewares/auth"
	"dayflow_backend/internals/testutil"
)

func setupApp(t *testing.T) (*fiber.App, func(role string) string) {
	t.Helper()
	users := testutil.NewUserStore()
	tokens := authService.NewTokenService("att-secret", time.Hour)
	gate := authService.NewAuthService(users, authService.NewPasswordHasher(bcrypt.MinCost), tokens, nil, time.UTC)
	clock := dbtime.FixedClock{T: time.Date(2025, 3, 3, 9, 15, 0, 0, time.UTC)}
	svc := service.NewAttendanceService(testutil.NewAttendanceStore(users), clock, time.UTC)

	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middlewares.ErrorHandler(false),
	})
	AttendanceRoutes(app.Group("/api", authMw.AuthMiddleware(tokens, gate)), controller.NewAttendanceController(svc))

	n := 0
	issue := func(role string) string {
		n++
		u := users.Put(model.UserModel{Name: role, Email: role + string(rune('a'+n)) + "@x.test", Role: role, IsActive: true})
		tok, err := tokens.Issue(u.ID)
		require.NoError(t, err)
		return tok
	}
	return app, issue
}

func do(t *testing.T, app *fiber.App, method, path, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestAttendanceRoutes(t *testing.T) {
	app, issue := setupApp(t)
	emp := issue(constants.RoleEmployee)
	hr := issue(constants.RoleHR)

	status, body := do(t, app, http.MethodGet, "/api/attendance/today", emp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.TodayCheckedOut, body["status"])
	assert.Nil(t, body["attendance"])

	status, body = do(t, app, http.MethodPost, "/api/attendance/checkin", emp)
	require.Equal(t, http.StatusOK, status, body)
	rec := body["attendance"].(map[string]any)
	assert.Equal(t, "2025-03-03", rec["date"])
	assert.Equal(t, "present", rec["status"])

	status, body = do(t, app, http.MethodPost, "/api/attendance/checkin", emp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_CHECKED_IN", body["error_code"])

	status, body = do(t, app, http.MethodGet, "/api/attendance/today", emp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.TodayCheckedIn, body["status"])

	status, body = do(t, app, http.MethodGet, "/api/attendance/history?limit=5", emp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	status, _ = do(t, app, http.MethodGet, "/api/attendance/history?startDate=bad", emp)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/attendance/all", emp)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = do(t, app, http.MethodGet, "/api/attendance/all?date=2025-03-03", hr)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
	list := body["attendance"].([]any)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].(map[string]any)["employee"])

	status, body = do(t, app, http.MethodPost, "/api/attendance/checkout", hr)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NOT_CHECKED_IN", body["error_code"])
}
