package model

import "github.com/shopspring/decimal"

const (
	WageFixed  = "fixed"
	WageHourly = "hourly"

	ComponentAllowance = "allowance"
	ComponentDeduction = "deduction"

	CalcPercentage = "percentage"
	CalcFixed      = "fixed"
)

type SalaryComponent struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	CalculationType string  `json:"calculationType"`
	Value           float64 `json:"value"`
	Amount          float64 `json:"amount"`
}

type SalaryStructure struct {
	WageType    string            `json:"wageType"`
	MonthlyWage float64           `json:"monthlyWage"`
	YearlyWage  float64           `json:"yearlyWage"`
	Components  []SalaryComponent `json:"components"`
}

// ComponentAmount resolves a component against the monthly wage. Percentage
// components are a share of the monthly wage, fixed ones are taken as is.
func ComponentAmount(monthly decimal.Decimal, c SalaryComponent) decimal.Decimal {
	v := decimal.NewFromFloat(c.Value)
	if c.CalculationType == CalcFixed {
		return v.Round(2)
	}
	return monthly.Mul(v).Div(decimal.NewFromInt(100)).Round(2)
}

// Normalized returns a copy with defaults filled in, yearly wage derived when
// omitted and every component amount recomputed.
func (s SalaryStructure) Normalized() SalaryStructure {
	out := s
	if out.WageType == "" {
		out.WageType = WageFixed
	}
	monthly := decimal.NewFromFloat(out.MonthlyWage)
	if out.YearlyWage == 0 {
		out.YearlyWage = monthly.Mul(decimal.NewFromInt(12)).Round(2).InexactFloat64()
	}
	out.Components = make([]SalaryComponent, len(s.Components))
	for i, c := range s.Components {
		if c.CalculationType == "" {
			c.CalculationType = CalcPercentage
		}
		c.Amount = ComponentAmount(monthly, c).InexactFloat64()
		out.Components[i] = c
	}
	return out
}

// Totals sums allowance and deduction amounts.
func (s SalaryStructure) Totals() (allowances, deductions decimal.Decimal) {
	monthly := decimal.NewFromFloat(s.MonthlyWage)
	for _, c := range s.Components {
		amt := ComponentAmount(monthly, c)
		switch c.Type {
		case ComponentAllowance:
			allowances = allowances.Add(amt)
		case ComponentDeduction:
			deductions = deductions.Add(amt)
		}
	}
	return allowances, deductions
}
