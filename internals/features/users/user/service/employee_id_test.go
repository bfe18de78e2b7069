package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/testutil"
)

func strptr(s string) *string { return &s }

func TestGenerateEmployeeID_FirstAndNext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewUserStore()

	id, err := GenerateEmployeeID(ctx, store, "Acme", "John", "Doe", 2025)
	require.NoError(t, err)
	assert.Equal(t, "ACJODO20250001", id)

	store.Put(model.UserModel{Email: "john@acme.test", EmployeeID: strptr(id)})

	next, err := GenerateEmployeeID(ctx, store, "Acme", "John", "Doe", 2025)
	require.NoError(t, err)
	assert.Equal(t, "ACJODO20250002", next)
}

func TestGenerateEmployeeID_ContinuesFromGreatestSerial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewUserStore()
	store.Put(model.UserModel{Email: "a@x.test", EmployeeID: strptr("ACJODO20250007")})
	store.Put(model.UserModel{Email: "b@x.test", EmployeeID: strptr("ACJODO20250003")})
	// Different year and a longer id with the same leading letters.
	store.Put(model.UserModel{Email: "c@x.test", EmployeeID: strptr("ACJODO20240099")})
	store.Put(model.UserModel{Email: "d@x.test", EmployeeID: strptr("ACJODO202500099")})

	id, err := GenerateEmployeeID(ctx, store, "Acme", "John", "Doe", 2025)
	require.NoError(t, err)
	assert.Equal(t, "ACJODO20250008", id)
}

func TestCreateWithEmployeeID_NonASCIINames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewUserStore()

	first := &model.UserModel{Name: "Élise Müller", Email: "elise@ostra.test"}
	require.NoError(t, CreateWithEmployeeID(ctx, store, first, "Östra", 2025))
	assert.Equal(t, "ÖSÉLMÜ20250001", first.EmployeeCode())

	second := &model.UserModel{Name: "Élise Müller", Email: "elise2@ostra.test"}
	require.NoError(t, CreateWithEmployeeID(ctx, store, second, "Östra", 2025))
	assert.Equal(t, "ÖSÉLMÜ20250002", second.EmployeeCode())
}

func TestEmployeeIDPrefix_Defaults(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "COUSNA2025", EmployeeIDPrefix("", "", "", 2025))
	assert.Equal(t, "DAADUS2026", EmployeeIDPrefix("DayFlow", "admin", "user", 2026))
	assert.Equal(t, "XJAJA2025", EmployeeIDPrefix("x", "Jane", "Jane", 2025))
}

func TestSplitName(t *testing.T) {
	t.Parallel()
	first, last := SplitName("  Jane   Q  Smith ")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Smith", last)

	first, last = SplitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "Cher", last)

	first, last = SplitName("   ")
	assert.Equal(t, "User", first)
	assert.Equal(t, "Name", last)
}

func TestCreateWithEmployeeID_RetriesOnConcurrentClaim(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewUserStore()
	store.BeforeCreate = func(s *testutil.UserStore, u *model.UserModel) {
		// Another request commits the same serial between lookup and insert.
		s.Put(model.UserModel{Email: "other@acme.test", EmployeeID: strptr(*u.EmployeeID)})
	}

	u := &model.UserModel{Name: "John Doe", Email: "john@acme.test"}
	require.NoError(t, CreateWithEmployeeID(ctx, store, u, "Acme", 2025))
	assert.Equal(t, "ACJODO20250002", u.EmployeeCode())
}

func TestCreateWithEmployeeID_PassesThroughOtherConflicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewUserStore()
	store.Put(model.UserModel{Email: "john@acme.test"})

	u := &model.UserModel{Name: "John Doe", Email: "JOHN@acme.test"}
	err := CreateWithEmployeeID(ctx, store, u, "Acme", 2025)
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}
