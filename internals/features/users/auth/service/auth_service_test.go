package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
	"dayflow_backend/internals/testutil"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newAuth(t *testing.T) (*AuthService, *testutil.UserStore) {
	t.Helper()
	store := testutil.NewUserStore()
	svc := NewAuthService(
		store,
		NewPasswordHasher(bcrypt.MinCost),
		NewTokenService("test-secret", time.Hour),
		dbtime.FixedClock{T: testNow},
		time.UTC,
	)
	return svc, store
}

func TestRegisterThenVerify(t *testing.T) {
	t.Parallel()
	svc, store := newAuth(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{
		CompanyName: "Acme",
		Name:        "John Doe",
		Email:       "  John@Acme.test ",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "john@acme.test", u.Email)
	assert.Equal(t, constants.RoleEmployee, u.Role)
	assert.Equal(t, "ACJODO20250001", u.EmployeeCode())

	stored, err := store.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.Password)

	got, err := svc.VerifyCredentials(ctx, "JOHN@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	id, err := svc.Tokens().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newAuth(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Name: "A B", Email: "a@x.test", Password: "password1"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Name: "A C", Email: "A@X.test", Password: "password2"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	t.Parallel()
	svc, _ := newAuth(t)
	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A B", Email: "a@x.test", Password: "password1", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestVerifyCredentials_GenericFailures(t *testing.T) {
	t.Parallel()
	svc, store := newAuth(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Name: "Jane Smith", Email: "jane@x.test", Password: "right-pass"})
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "jane@x.test", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.VerifyCredentials(ctx, "nobody@x.test", "right-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, store.Deactivate(ctx, u.ID))
	_, err = svc.VerifyCredentials(ctx, "jane@x.test", "right-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	svc, store := newAuth(t)
	ctx := context.Background()

	emp := store.Put(model.UserModel{Email: "e@x.test", Role: constants.RoleEmployee, IsActive: true})
	hr := store.Put(model.UserModel{Email: "h@x.test", Role: constants.RoleHR, IsActive: true})
	gone := store.Put(model.UserModel{Email: "g@x.test", Role: constants.RoleAdmin, IsActive: false})

	got, err := svc.Authorize(ctx, hr.ID, constants.AdminOrHR)
	require.NoError(t, err)
	assert.Equal(t, hr.ID, got.ID)

	_, err = svc.Authorize(ctx, emp.ID, constants.AdminOrHR)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Authorize(ctx, emp.ID, nil)
	assert.NoError(t, err)

	_, err = svc.Authorize(ctx, gone.ID, constants.AdminOrHR)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authorize(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorize_RoleChangeTakesEffectImmediately(t *testing.T) {
	t.Parallel()
	svc, store := newAuth(t)
	ctx := context.Background()

	u := store.Put(model.UserModel{Email: "p@x.test", Role: constants.RoleHR, IsActive: true})
	_, err := svc.Authorize(ctx, u.ID, constants.AdminOrHR)
	require.NoError(t, err)

	u.Role = constants.RoleEmployee
	store.Put(u)
	_, err = svc.Authorize(ctx, u.ID, constants.AdminOrHR)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	svc, _ := newAuth(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Name: "Jane Smith", Email: "jane@x.test", Password: "old-pass"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, u, "nope", "new-pass"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, u, "old-pass", "old-pass"), ErrPasswordUnchanged)
	require.NoError(t, svc.ChangePassword(ctx, u, "old-pass", "new-pass"))

	_, err = svc.VerifyCredentials(ctx, "jane@x.test", "old-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	got, err := svc.VerifyCredentials(ctx, "jane@x.test", "new-pass")
	require.NoError(t, err)
	assert.False(t, got.MustChangePassword)
	assert.False(t, got.IsPasswordGenerated)
}
