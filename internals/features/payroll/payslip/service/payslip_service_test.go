package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	userModel "dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
)

func structure() userModel.SalaryStructure {
	return userModel.SalaryStructure{
		MonthlyWage: 50000,
		Components: []userModel.SalaryComponent{
			{Name: "Basic", Type: userModel.ComponentAllowance, CalculationType: userModel.CalcPercentage, Value: 50},
			{Name: "PF", Type: userModel.ComponentDeduction, CalculationType: userModel.CalcPercentage, Value: 12},
			{Name: "Professional Tax", Type: userModel.ComponentDeduction, CalculationType: userModel.CalcFixed, Value: 200},
		},
	}
}

func TestCalculate_Prorates(t *testing.T) {
	t.Parallel()
	extra := decimal.NewFromInt(1500)
	res, err := Calculate(structure(), Input{WorkingDays: 22, PresentDays: 20, Bonus: extra})
	require.NoError(t, err)

	assert.Equal(t, "2272.73", res.PerDay.StringFixed(2))
	assert.Equal(t, "45454.55", res.Earned.StringFixed(2))
	assert.Equal(t, "25000.00", res.Allowances.StringFixed(2))
	assert.Equal(t, "6200.00", res.Deductions.StringFixed(2))
	// 45454.5454... + 1500 - 6200
	assert.Equal(t, "40754.55", res.Net.StringFixed(2))
	require.Len(t, res.Components, 3)
	assert.Equal(t, 6000.0, res.Components[1].Amount)
}

func TestCalculate_DeductionOverride(t *testing.T) {
	t.Parallel()
	zero := decimal.Zero
	res, err := Calculate(structure(), Input{WorkingDays: 25, PresentDays: 25, Deductions: &zero})
	require.NoError(t, err)
	assert.Equal(t, "50000.00", res.Net.StringFixed(2))
}

func TestCalculate_Invalid(t *testing.T) {
	t.Parallel()
	_, err := Calculate(structure(), Input{WorkingDays: 0, PresentDays: 1})
	assert.ErrorIs(t, err, ErrInvalidWorkingDays)

	_, err = Calculate(structure(), Input{WorkingDays: 22, Bonus: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

type fakeEmployees map[uuid.UUID]*userModel.UserModel

func (f fakeEmployees) Get(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, userModel.ErrAccountNotFound
}

type fakePresence struct {
	days     int
	from, to time.Time
}

func (f *fakePresence) PresentDays(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int, error) {
	f.from, f.to = from, to
	return f.days, nil
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	u := &userModel.UserModel{ID: uuid.New(), Name: "Jane", SalaryStructure: datatypes.NewJSONType(structure())}
	bare := &userModel.UserModel{ID: uuid.New(), Name: "New Hire"}
	presence := &fakePresence{days: 11}
	svc := NewPayslipService(fakeEmployees{u.ID: u, bare.ID: bare}, presence)
	ctx := context.Background()

	slip, err := svc.Generate(ctx, Request{EmployeeID: u.ID, Month: "2025-02"})
	require.NoError(t, err)
	assert.Equal(t, "2025-02", slip.Month)
	assert.Equal(t, DefaultWorkingDays, slip.WorkingDays)
	assert.Equal(t, 11, slip.PresentDays)
	assert.Equal(t, "25000.00", slip.Earned.StringFixed(2))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), presence.from)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), presence.to)

	_, err = svc.Generate(ctx, Request{EmployeeID: u.ID, Month: "February"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Generate(ctx, Request{EmployeeID: bare.ID, Month: "2025-02"})
	assert.ErrorIs(t, err, ErrNoSalary)

	_, err = svc.Generate(ctx, Request{EmployeeID: uuid.New(), Month: "2025-02"})
	assert.ErrorIs(t, err, userModel.ErrAccountNotFound)
}
