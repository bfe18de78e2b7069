package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/features/users/user/service"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

/* =========================
   Responses
========================= */

// EmployeeSummary is the directory card shape, also embedded in attendance
// and leave listings.
type EmployeeSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	EmployeeID  string     `json:"employeeId,omitempty"`
	Role        string     `json:"role,omitempty"`
	Designation string     `json:"designation,omitempty"`
	Department  string     `json:"department,omitempty"`
	JoiningDate *time.Time `json:"joiningDate,omitempty"`
}

func ToSummary(u *model.UserModel) *EmployeeSummary {
	if u == nil {
		return nil
	}
	s := &EmployeeSummary{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		EmployeeID:  u.EmployeeCode(),
		Role:        u.Role,
		Designation: u.Designation,
		Department:  u.Department,
	}
	if u.JoiningDate != nil {
		t := time.Time(*u.JoiningDate)
		s.JoiningDate = &t
	}
	return s
}

func ToSummaries(us []model.UserModel) []EmployeeSummary {
	out := make([]EmployeeSummary, 0, len(us))
	for i := range us {
		out = append(out, *ToSummary(&us[i]))
	}
	return out
}

// EmployeeProfile is the full profile. SalaryStructure is only filled for
// the employee themself and for admin/hr viewers.
type EmployeeProfile struct {
	EmployeeSummary
	CompanyName         string                 `json:"companyName,omitempty"`
	Phone               string                 `json:"phone,omitempty"`
	Address             string                 `json:"address,omitempty"`
	DateOfBirth         *time.Time             `json:"dateOfBirth,omitempty"`
	Nationality         string                 `json:"nationality,omitempty"`
	Gender              string                 `json:"gender,omitempty"`
	MaritalStatus       string                 `json:"maritalStatus,omitempty"`
	PersonalEmail       string                 `json:"personalEmail,omitempty"`
	BankDetails         model.BankDetails      `json:"bankDetails"`
	CompanyInfo         model.CompanyInfo      `json:"companyInfo"`
	SalaryStructure     *model.SalaryStructure `json:"salaryStructure,omitempty"`
	IsActive            bool                   `json:"isActive"`
	MustChangePassword  bool                   `json:"mustChangePassword"`
	IsPasswordGenerated bool                   `json:"isPasswordGenerated"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func ToProfile(u *model.UserModel, withSalary bool) EmployeeProfile {
	p := EmployeeProfile{
		EmployeeSummary:     *ToSummary(u),
		CompanyName:         u.CompanyName,
		Phone:               u.Phone,
		Address:             u.Address,
		Nationality:         u.Nationality,
		Gender:              u.Gender,
		MaritalStatus:       u.MaritalStatus,
		PersonalEmail:       u.PersonalEmail,
		BankDetails:         u.BankDetails.Data(),
		CompanyInfo:         u.CompanyInfo.Data(),
		IsActive:            u.IsActive,
		MustChangePassword:  u.MustChangePassword,
		IsPasswordGenerated: u.IsPasswordGenerated,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		t := time.Time(*u.DateOfBirth)
		p.DateOfBirth = &t
	}
	if withSalary {
		st := u.SalaryStructure.Data()
		if st.Components == nil {
			st.Components = []model.SalaryComponent{}
		}
		p.SalaryStructure = &st
	}
	return p
}

/* =========================
   Requests
========================= */

type CreateEmployeeRequest struct {
	CompanyName string `json:"companyName" validate:"omitempty,max=120"`
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Role        string `json:"role" validate:"omitempty,oneof=employee hr admin"`
	Designation string `json:"designation" validate:"omitempty,max=120"`
	Department  string `json:"department" validate:"omitempty,max=120"`
}

func (r *CreateEmployeeRequest) ToInput() service.CreateEmployeeInput {
	return service.CreateEmployeeInput{
		CompanyName: r.CompanyName,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Role:        r.Role,
		Designation: r.Designation,
		Department:  r.Department,
	}
}

type UpdateEmployeeRequest struct {
	Name          *string            `json:"name" validate:"omitempty,min=2,max=120"`
	Phone         *string            `json:"phone" validate:"omitempty,max=30"`
	Address       *string            `json:"address" validate:"omitempty,max=255"`
	Designation   *string            `json:"designation" validate:"omitempty,max=120"`
	Department    *string            `json:"department" validate:"omitempty,max=120"`
	DateOfBirth   *string            `json:"dateOfBirth"`
	Nationality   *string            `json:"nationality" validate:"omitempty,max=60"`
	Gender        *string            `json:"gender" validate:"omitempty,oneof=male female other"`
	MaritalStatus *string            `json:"maritalStatus" validate:"omitempty,oneof=single married divorced widowed"`
	PersonalEmail *string            `json:"personalEmail" validate:"omitempty,email"`
	BankDetails   *model.BankDetails `json:"bankDetails"`
	CompanyInfo   *model.CompanyInfo `json:"companyInfo"`
}

func (r *UpdateEmployeeRequest) ToPatch() (service.ProfilePatch, error) {
	p := service.ProfilePatch{
		Name:          r.Name,
		Phone:         r.Phone,
		Address:       r.Address,
		Designation:   r.Designation,
		Department:    r.Department,
		Nationality:   r.Nationality,
		Gender:        r.Gender,
		MaritalStatus: r.MaritalStatus,
		PersonalEmail: r.PersonalEmail,
		BankDetails:   r.BankDetails,
		CompanyInfo:   r.CompanyInfo,
	}
	if r.DateOfBirth != nil && strings.TrimSpace(*r.DateOfBirth) != "" {
		d, err := dbtime.ParseDate(*r.DateOfBirth)
		if err != nil {
			return p, apperr.InvalidFields(map[string]string{"dateOfBirth": err.Error()})
		}
		p.DateOfBirth = &d
	}
	return p, nil
}

type SalaryComponentRequest struct {
	Name            string  `json:"name" validate:"required,max=60"`
	Type            string  `json:"type" validate:"required,oneof=allowance deduction"`
	CalculationType string  `json:"calculationType" validate:"omitempty,oneof=percentage fixed"`
	Value           float64 `json:"value" validate:"gte=0"`
}

type UpdateSalaryRequest struct {
	WageType    string                   `json:"wageType" validate:"omitempty,oneof=fixed hourly"`
	MonthlyWage float64                  `json:"monthlyWage" validate:"gte=0"`
	YearlyWage  float64                  `json:"yearlyWage" validate:"gte=0"`
	Components  []SalaryComponentRequest `json:"components" validate:"omitempty,dive"`
}

func (r *UpdateSalaryRequest) ToModel() model.SalaryStructure {
	st := model.SalaryStructure{
		WageType:    r.WageType,
		MonthlyWage: r.MonthlyWage,
		YearlyWage:  r.YearlyWage,
		Components:  make([]model.SalaryComponent, 0, len(r.Components)),
	}
	for _, c := range r.Components {
		st.Components = append(st.Components, model.SalaryComponent{
			Name:            strings.TrimSpace(c.Name),
			Type:            c.Type,
			CalculationType: c.CalculationType,
			Value:           c.Value,
		})
	}
	return st
}
