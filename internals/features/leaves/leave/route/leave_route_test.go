package route

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/leaves/leave/controller"
	"dayflow_backend/internals/features/leaves/leave/service"
	authService "dayflow_backend/internals/features/users/auth/service"
	"dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/middlewares"
	authMw "dayflow_backend/internals/middlewares/auth"
	"dayflow_backend/internals/testutil"
)

type harness struct {
	app    *fiber.App
	tokens *authService.TokenService
	users  *testutil.UserStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	users := testutil.NewUserStore()
	tokens := authService.NewTokenService("leave-secret", time.Hour)
	gate := authService.NewAuthService(users, authService.NewPasswordHasher(bcrypt.MinCost), tokens, nil, time.UTC)
	svc := service.NewLeaveService(testutil.NewLeaveStore(users), nil)

	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middlewares.ErrorHandler(false),
	})
	LeaveRoutes(app.Group("/api", authMw.AuthMiddleware(tokens, gate)), controller.NewLeaveController(svc))
	return &harness{app: app, tokens: tokens, users: users}
}

func (h *harness) token(t *testing.T, email, role string) string {
	t.Helper()
	u := h.users.Put(model.UserModel{Name: role, Email: email, Role: role, IsActive: true})
	tok, err := h.tokens.Issue(u.ID)
	require.NoError(t, err)
	return tok
}

func (h *harness) call(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestLeaveRoutes_Lifecycle(t *testing.T) {
	h := newHarness(t)
	emp := h.token(t, "emp@x.test", constants.RoleEmployee)
	hr := h.token(t, "hr@x.test", constants.RoleHR)

	status, body := h.call(t, http.MethodPost, "/api/leaves", emp,
		`{"startDate":"2025-01-01","endDate":"2025-01-03","leaveType":"Paid Time Off"}`)
	require.Equal(t, http.StatusCreated, status, body)
	leave := body["leave"].(map[string]any)
	assert.Equal(t, float64(3), leave["daysCount"])
	assert.Equal(t, "pending", leave["status"])
	assert.Equal(t, "No reason provided", leave["reason"])
	id := leave["id"].(string)

	status, body = h.call(t, http.MethodGet, "/api/leaves/all", emp, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only admin or HR can access leave approvals", body["message"])

	status, body = h.call(t, http.MethodPut, "/api/leaves/"+id+"/approve", hr, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "approved", body["leave"].(map[string]any)["status"])

	status, body = h.call(t, http.MethodPut, "/api/leaves/"+id+"/reject", hr, `{"reason":"late"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NOT_PENDING", body["error_code"])

	status, body = h.call(t, http.MethodGet, "/api/leaves/my-leaves", emp, "")
	require.Equal(t, http.StatusOK, status)
	stats := body["statistics"].(map[string]any)
	assert.Equal(t, float64(21), stats["paidTimeOffAvailable"])
	assert.Equal(t, float64(3), stats["paidTimeOffUsed"])
	assert.Equal(t, float64(7), stats["sickTimeOffAvailable"])

	status, body = h.call(t, http.MethodDelete, "/api/leaves/"+id, emp, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NOT_DELETABLE", body["error_code"])
}

func TestLeaveRoutes_RejectReason(t *testing.T) {
	h := newHarness(t)
	emp := h.token(t, "emp@x.test", constants.RoleEmployee)
	hr := h.token(t, "hr@x.test", constants.RoleHR)

	submit := func(day string) string {
		status, body := h.call(t, http.MethodPost, "/api/leaves", emp,
			`{"startDate":"`+day+`","endDate":"`+day+`","leaveType":"Other"}`)
		require.Equal(t, http.StatusCreated, status, body)
		return body["leave"].(map[string]any)["id"].(string)
	}

	status, body := h.call(t, http.MethodPut, "/api/leaves/"+submit("2025-02-03")+"/reject", hr, `{"reason":"team offsite"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "team offsite", body["leave"].(map[string]any)["rejectionReason"])

	status, body = h.call(t, http.MethodPut, "/api/leaves/"+submit("2025-02-04")+"/reject", hr, `{"rejectionReason":"short staffed"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "short staffed", body["leave"].(map[string]any)["rejectionReason"])

	status, body = h.call(t, http.MethodPut, "/api/leaves/"+submit("2025-02-05")+"/reject", hr, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, constants.DefaultLeaveReason, body["leave"].(map[string]any)["rejectionReason"])
}

func TestLeaveRoutes_Validation(t *testing.T) {
	h := newHarness(t)
	emp := h.token(t, "emp@x.test", constants.RoleEmployee)

	status, body := h.call(t, http.MethodPost, "/api/leaves", emp,
		`{"startDate":"2025-01-05","endDate":"2025-01-01","leaveType":"Other"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_RANGE", body["error_code"])

	status, body = h.call(t, http.MethodPost, "/api/leaves", emp,
		`{"startDate":"soon","endDate":"2025-01-01","leaveType":"Holiday"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "startDate")
	assert.Contains(t, errs, "leaveType")

	status, _ = h.call(t, http.MethodPut, "/api/leaves/not-a-uuid/approve", h.token(t, "admin@x.test", constants.RoleAdmin), "")
	assert.Equal(t, http.StatusBadRequest, status)
}
