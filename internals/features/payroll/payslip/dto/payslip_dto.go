package dto

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"dayflow_backend/internals/features/payroll/payslip/service"
	userModel "dayflow_backend/internals/features/users/user/model"
	userDto "dayflow_backend/internals/features/users/user/dto"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

// ParseQuery reads month, workingDays, bonus and deductions from the query.
func ParseQuery(c *fiber.Ctx, req *service.Request) error {
	fields := map[string]string{}

	req.Month = strings.TrimSpace(c.Query("month"))
	if req.Month == "" {
		fields["month"] = "month is required (YYYY-MM)"
	}
	if raw := strings.TrimSpace(c.Query("workingDays")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			fields["workingDays"] = "workingDays must be a positive number"
		}
		req.WorkingDays = n
	}
	req.Bonus = decimal.Zero
	if raw := strings.TrimSpace(c.Query("bonus")); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fields["bonus"] = "bonus must be a number"
		}
		req.Bonus = d
	}
	if raw := strings.TrimSpace(c.Query("deductions")); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fields["deductions"] = "deductions must be a number"
		} else {
			req.Deductions = &d
		}
	}

	if len(fields) > 0 {
		return apperr.InvalidFields(fields)
	}
	return nil
}

type PayslipResponse struct {
	Employee    *userDto.EmployeeSummary    `json:"employee"`
	BankDetails userModel.BankDetails       `json:"bankDetails"`
	Month       string                      `json:"month"`
	PeriodStart string                      `json:"periodStart"`
	PeriodEnd   string                      `json:"periodEnd"`
	WorkingDays int                         `json:"workingDays"`
	PresentDays int                         `json:"presentDays"`
	MonthlyWage decimal.Decimal             `json:"monthlyWage"`
	PerDay      decimal.Decimal             `json:"perDaySalary"`
	Earned      decimal.Decimal             `json:"earnedSalary"`
	Allowances  decimal.Decimal             `json:"allowances"`
	Bonus       decimal.Decimal             `json:"bonus"`
	Deductions  decimal.Decimal             `json:"deductions"`
	Net         decimal.Decimal             `json:"netSalary"`
	Components  []userModel.SalaryComponent `json:"components"`
}

func ToResponse(p *service.Payslip) PayslipResponse {
	comps := p.Components
	if comps == nil {
		comps = []userModel.SalaryComponent{}
	}
	return PayslipResponse{
		Employee:    userDto.ToSummary(p.Employee),
		BankDetails: p.Employee.BankDetails.Data(),
		Month:       p.Month,
		PeriodStart: p.From.Format(dbtime.DateLayout),
		PeriodEnd:   p.To.Format(dbtime.DateLayout),
		WorkingDays: p.WorkingDays,
		PresentDays: p.PresentDays,
		MonthlyWage: p.MonthlyWage,
		PerDay:      p.PerDay,
		Earned:      p.Earned,
		Allowances:  p.Allowances,
		Bonus:       p.Bonus,
		Deductions:  p.Deductions,
		Net:         p.Net,
		Components:  comps,
	}
}
