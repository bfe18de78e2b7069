package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	userModel "dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

const DefaultWorkingDays = 22

var (
	ErrInvalidWorkingDays = apperr.Validation("INVALID_WORKING_DAYS", "workingDays must be greater than zero")
	ErrInvalidAmount      = apperr.Validation("INVALID_AMOUNT", "bonus and deductions must not be negative")
	ErrNoSalary           = apperr.Validation("NO_SALARY_STRUCTURE", "Employee has no salary structure")
)

type EmployeeReader interface {
	Get(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
}

type PresenceCounter interface {
	PresentDays(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int, error)
}

type Input struct {
	WorkingDays int
	PresentDays int
	Bonus       decimal.Decimal
	// Deductions overrides the structure's deduction total when set.
	Deductions *decimal.Decimal
}

type Result struct {
	MonthlyWage decimal.Decimal
	WorkingDays int
	PresentDays int
	PerDay      decimal.Decimal
	Earned      decimal.Decimal
	Allowances  decimal.Decimal
	Bonus       decimal.Decimal
	Deductions  decimal.Decimal
	Net         decimal.Decimal
	Components  []userModel.SalaryComponent
}

// Calculate prorates the monthly wage over presentDays of workingDays and
// applies bonus and deductions. Amounts are rounded to 2 places.
func Calculate(st userModel.SalaryStructure, in Input) (Result, error) {
	if in.WorkingDays <= 0 {
		return Result{}, ErrInvalidWorkingDays
	}
	if in.Bonus.IsNegative() || (in.Deductions != nil && in.Deductions.IsNegative()) {
		return Result{}, ErrInvalidAmount
	}
	present := in.PresentDays
	if present < 0 {
		present = 0
	}

	st = st.Normalized()
	monthly := decimal.NewFromFloat(st.MonthlyWage)
	allowances, deductions := st.Totals()
	if in.Deductions != nil {
		deductions = *in.Deductions
	}

	perDay := monthly.Div(decimal.NewFromInt(int64(in.WorkingDays)))
	earned := perDay.Mul(decimal.NewFromInt(int64(present)))
	net := earned.Add(in.Bonus).Sub(deductions)

	return Result{
		MonthlyWage: monthly.Round(2),
		WorkingDays: in.WorkingDays,
		PresentDays: present,
		PerDay:      perDay.Round(2),
		Earned:      earned.Round(2),
		Allowances:  allowances.Round(2),
		Bonus:       in.Bonus.Round(2),
		Deductions:  deductions.Round(2),
		Net:         net.Round(2),
		Components:  st.Components,
	}, nil
}

type PayslipService struct {
	employees EmployeeReader
	presence  PresenceCounter
}

func NewPayslipService(employees EmployeeReader, presence PresenceCounter) *PayslipService {
	return &PayslipService{employees: employees, presence: presence}
}

type Request struct {
	EmployeeID  uuid.UUID
	Month       string
	WorkingDays int
	Bonus       decimal.Decimal
	Deductions  *decimal.Decimal
}

type Payslip struct {
	Employee *userModel.UserModel
	Month    string
	From     time.Time
	To       time.Time
	Result
}

// Generate builds the payslip of one employee for a calendar month, counting
// present days from attendance.
func (s *PayslipService) Generate(ctx context.Context, req Request) (*Payslip, error) {
	from, to, err := dbtime.ParseMonth(req.Month)
	if err != nil {
		return nil, apperr.InvalidFields(map[string]string{"month": err.Error()})
	}
	u, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	st := u.SalaryStructure.Data()
	if st.MonthlyWage <= 0 {
		return nil, ErrNoSalary
	}

	present, err := s.presence.PresentDays(ctx, u.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count present days: %w", err)
	}
	wd := req.WorkingDays
	if wd == 0 {
		wd = DefaultWorkingDays
	}
	res, err := Calculate(st, Input{
		WorkingDays: wd,
		PresentDays: present,
		Bonus:       req.Bonus,
		Deductions:  req.Deductions,
	})
	if err != nil {
		return nil, err
	}
	return &Payslip{Employee: u, Month: from.Format(dbtime.MonthLayout), From: from, To: to, Result: res}, nil
}
