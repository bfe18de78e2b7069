package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode"

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

type bcryptHasher struct{}

func (bcryptHasher) Hash(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.MinCost)
	return string(b), err
}

func newEmployees(t *testing.T) (*EmployeeService, *testutil.UserStore) {
	t.Helper()
	store := testutil.NewUserStore()
	clock := dbtime.FixedClock{T: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)}
	return NewEmployeeService(store, bcryptHasher{}, clock, time.UTC), store
}

func TestCreateEmployee_GeneratedCredentials(t *testing.T) {
	t.Parallel()
	svc, store := newEmployees(t)
	ctx := context.Background()

	u, temp, err := svc.CreateEmployee(ctx, CreateEmployeeInput{
		CompanyName: "Acme",
		Name:        "Jane Smith",
		Email:       "jane@acme.test",
		Designation: "Engineer",
	})
	require.NoError(t, err)

	assert.Equal(t, "ACJASM20250001", u.EmployeeCode())
	assert.Equal(t, constants.RoleEmployee, u.Role)
	assert.True(t, u.MustChangePassword)
	assert.True(t, u.IsPasswordGenerated)
	assert.True(t, u.IsActive)

	require.Len(t, temp, 16)
	for i, r := range temp {
		if i < 8 {
			assert.False(t, unicode.IsUpper(r), temp)
		} else {
			assert.False(t, unicode.IsLower(r), temp)
		}
	}

	stored, err := store.FindByEmail(ctx, "jane@acme.test")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(temp)))
	assert.NotContains(t, stored.Password, temp)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, store := newEmployees(t)
	store.Put(model.UserModel{Email: "jane@acme.test"})

	_, _, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Name: "Jane Smith", Email: "Jane@Acme.test"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUpdateProfile_MergesNestedDetails(t *testing.T) {
	t.Parallel()
	svc, store := newEmployees(t)
	ctx := context.Background()

	u, _, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Jane Smith", Email: "jane@acme.test"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, u.ID, ProfilePatch{
		BankDetails: &model.BankDetails{BankName: "First Bank", AccountNumber: "123"},
	})
	require.NoError(t, err)

	phone := " +91-1 "
	got, err := svc.UpdateProfile(ctx, u.ID, ProfilePatch{
		Phone:       &phone,
		BankDetails: &model.BankDetails{IFSCCode: "FB0001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "+91-1", got.Phone)

	stored, err := store.FindByID(ctx, u.ID)
	require.NoError(t, err)
	bank := stored.BankDetails.Data()
	assert.Equal(t, "First Bank", bank.BankName)
	assert.Equal(t, "123", bank.AccountNumber)
	assert.Equal(t, "FB0001", bank.IFSCCode)
	assert.Equal(t, "Jane Smith", stored.Name)
}

func TestUpdateProfile_RejectsBlankName(t *testing.T) {
	t.Parallel()
	svc, _ := newEmployees(t)
	ctx := context.Background()
	u, _, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Jane Smith", Email: "jane@acme.test"})
	require.NoError(t, err)

	blank := "  "
	_, err = svc.UpdateProfile(ctx, u.ID, ProfilePatch{Name: &blank})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateSalary_DerivesAmounts(t *testing.T) {
	t.Parallel()
	svc, _ := newEmployees(t)
	ctx := context.Background()
	u, _, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Jane Smith", Email: "jane@acme.test"})
	require.NoError(t, err)

	got, err := svc.UpdateSalary(ctx, u.ID, model.SalaryStructure{
		MonthlyWage: 50000,
		Components: []model.SalaryComponent{
			{Name: "Basic", Type: model.ComponentAllowance, Value: 50},
			{Name: "PF", Type: model.ComponentDeduction, CalculationType: model.CalcFixed, Value: 1800},
		},
	})
	require.NoError(t, err)

	st := got.SalaryStructure.Data()
	assert.Equal(t, model.WageFixed, st.WageType)
	assert.Equal(t, 600000.0, st.YearlyWage)
	require.Len(t, st.Components, 2)
	assert.Equal(t, 25000.0, st.Components[0].Amount)
	assert.Equal(t, model.CalcPercentage, st.Components[0].CalculationType)
	assert.Equal(t, 1800.0, st.Components[1].Amount)
}

func TestUpdateSalary_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newEmployees(t)
	_, err := svc.UpdateSalary(context.Background(), uuid.New(), model.SalaryStructure{
		WageType:   "weekly",
		Components: []model.SalaryComponent{{Name: "x", Type: "bonus"}},
	})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "wageType")
	assert.Contains(t, ae.Fields, "components[0]")
}

func TestDeactivate_HidesFromList(t *testing.T) {
	t.Parallel()
	svc, _ := newEmployees(t)
	ctx := context.Background()

	a, _, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Ann Lee", Email: "ann@x.test"})
	require.NoError(t, err)
	b, _, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Bob Ray", Email: "bob@x.test"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, a.ID))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	// still readable, never removed
	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestGenerateTemporaryPassword_Alphabet(t *testing.T) {
	t.Parallel()
	p, err := GenerateTemporaryPassword()
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(p[:8]), p[:8])
	assert.Equal(t, strings.ToUpper(p[8:]), p[8:])
}
