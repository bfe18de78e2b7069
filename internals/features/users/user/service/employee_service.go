package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

var ErrInvalidRole = apperr.Validation("INVALID_ROLE", "role must be one of employee, hr, admin")

type EmployeeStore interface {
	AccountCreator
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	ListActive(ctx context.Context) ([]model.UserModel, error)
	UpdateProfile(ctx context.Context, u *model.UserModel) error
	UpdateSalary(ctx context.Context, id uuid.UUID, s model.SalaryStructure) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type EmployeeService struct {
	store  EmployeeStore
	hasher PasswordHasher
	clock  dbtime.Clock
	loc    *time.Location
}

func NewEmployeeService(store EmployeeStore, hasher PasswordHasher, clock dbtime.Clock, loc *time.Location) *EmployeeService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EmployeeService{store: store, hasher: hasher, clock: clock, loc: loc}
}

type CreateEmployeeInput struct {
	CompanyName string
	Name        string
	Email       string
	Phone       string
	Role        string
	Designation string
	Department  string
}

// CreateEmployee provisions an account with a generated employee id and a
// temporary password the employee must change on first sign-in. The
// plaintext password is returned once and never stored.
func (s *EmployeeService) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*model.UserModel, string, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = constants.RoleEmployee
	}
	if !constants.IsValidRole(role) {
		return nil, "", ErrInvalidRole
	}

	temp, err := GenerateTemporaryPassword()
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	hash, err := s.hasher.Hash(temp)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	now := s.clock.Now().In(s.loc)
	joined := datatypes.Date(dbtime.DayOf(now, s.loc))
	u := &model.UserModel{
		CompanyName:         in.CompanyName,
		Name:                in.Name,
		Email:               in.Email,
		Phone:               strings.TrimSpace(in.Phone),
		Password:            hash,
		Role:                role,
		Designation:         strings.TrimSpace(in.Designation),
		Department:          strings.TrimSpace(in.Department),
		JoiningDate:         &joined,
		SalaryStructure:     datatypes.NewJSONType(model.SalaryStructure{WageType: model.WageFixed}),
		IsActive:            true,
		IsPasswordGenerated: true,
		MustChangePassword:  true,
	}
	u.Normalize()

	if err := CreateWithEmployeeID(ctx, s.store, u, u.CompanyName, now.Year()); err != nil {
		return nil, "", err
	}
	log.Printf("[INFO] employee created id=%s employee_id=%s role=%s", u.ID, u.EmployeeCode(), u.Role)
	return u, temp, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]model.UserModel, error) {
	return s.store.ListActive(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	return s.store.FindByID(ctx, id)
}

// ProfilePatch carries the optional profile fields of an update request.
// Nil means "leave unchanged". Bank and company details merge field by field.
type ProfilePatch struct {
	Name          *string
	Phone         *string
	Address       *string
	Designation   *string
	Department    *string
	DateOfBirth   *time.Time
	Nationality   *string
	Gender        *string
	MaritalStatus *string
	PersonalEmail *string
	BankDetails   *model.BankDetails
	CompanyInfo   *model.CompanyInfo
}

func (s *EmployeeService) UpdateProfile(ctx context.Context, id uuid.UUID, p ProfilePatch) (*model.UserModel, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setStr(&u.Name, p.Name)
	setStr(&u.Phone, p.Phone)
	setStr(&u.Address, p.Address)
	setStr(&u.Designation, p.Designation)
	setStr(&u.Department, p.Department)
	setStr(&u.Nationality, p.Nationality)
	setStr(&u.Gender, p.Gender)
	setStr(&u.MaritalStatus, p.MaritalStatus)
	setStr(&u.PersonalEmail, p.PersonalEmail)
	if p.DateOfBirth != nil {
		d := datatypes.Date(*p.DateOfBirth)
		u.DateOfBirth = &d
	}
	if p.BankDetails != nil {
		u.BankDetails = datatypes.NewJSONType(mergeBank(u.BankDetails.Data(), *p.BankDetails))
	}
	if p.CompanyInfo != nil {
		u.CompanyInfo = datatypes.NewJSONType(mergeCompany(u.CompanyInfo.Data(), *p.CompanyInfo))
	}
	if strings.TrimSpace(u.Name) == "" {
		return nil, apperr.InvalidFields(map[string]string{"name": "name is required"})
	}

	if err := s.store.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateSalary replaces the salary structure. Component amounts and an
// omitted yearly wage are derived from the monthly wage.
func (s *EmployeeService) UpdateSalary(ctx context.Context, id uuid.UUID, st model.SalaryStructure) (*model.UserModel, error) {
	if fields := validateSalary(st); len(fields) > 0 {
		return nil, apperr.InvalidFields(fields)
	}
	st = st.Normalized()
	if err := s.store.UpdateSalary(ctx, id, st); err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

// Deactivate is the only way to remove an employee. Accounts are never deleted.
func (s *EmployeeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Deactivate(ctx, id); err != nil {
		return err
	}
	log.Printf("[INFO] employee deactivated id=%s", id)
	return nil
}

func validateSalary(st model.SalaryStructure) map[string]string {
	fields := map[string]string{}
	if st.WageType != "" && st.WageType != model.WageFixed && st.WageType != model.WageHourly {
		fields["wageType"] = "wageType must be one of: fixed hourly"
	}
	if st.MonthlyWage < 0 {
		fields["monthlyWage"] = "monthlyWage must be >= 0"
	}
	if st.YearlyWage < 0 {
		fields["yearlyWage"] = "yearlyWage must be >= 0"
	}
	for i, c := range st.Components {
		key := fmt.Sprintf("components[%d]", i)
		switch {
		case strings.TrimSpace(c.Name) == "":
			fields[key] = "name is required"
		case c.Type != model.ComponentAllowance && c.Type != model.ComponentDeduction:
			fields[key] = "type must be one of: allowance deduction"
		case c.CalculationType != "" && c.CalculationType != model.CalcPercentage && c.CalculationType != model.CalcFixed:
			fields[key] = "calculationType must be one of: percentage fixed"
		case c.Value < 0:
			fields[key] = "value must be >= 0"
		}
	}
	return fields
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func pick(next, cur string) string {
	if strings.TrimSpace(next) != "" {
		return strings.TrimSpace(next)
	}
	return cur
}

func mergeBank(cur, next model.BankDetails) model.BankDetails {
	return model.BankDetails{
		AccountNumber: pick(next.AccountNumber, cur.AccountNumber),
		BankName:      pick(next.BankName, cur.BankName),
		IFSCCode:      pick(next.IFSCCode, cur.IFSCCode),
		PANNumber:     pick(next.PANNumber, cur.PANNumber),
		UANNumber:     pick(next.UANNumber, cur.UANNumber),
		EmpCode:       pick(next.EmpCode, cur.EmpCode),
	}
}

func mergeCompany(cur, next model.CompanyInfo) model.CompanyInfo {
	return model.CompanyInfo{
		Company:    pick(next.Company, cur.Company),
		Department: pick(next.Department, cur.Department),
		Manager:    pick(next.Manager, cur.Manager),
		Location:   pick(next.Location, cur.Location),
	}
}

const (
	lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
	upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateTemporaryPassword returns 8 lower-case then 8 upper-case
// alphanumerics drawn from crypto/rand.
func GenerateTemporaryPassword() (string, error) {
	var b strings.Builder
	b.Grow(16)
	for _, set := range []string{lowerAlnum, upperAlnum} {
		for i := 0; i < 8; i++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
			if err != nil {
				return "", fmt.Errorf("temporary password: %w", err)
			}
			b.WriteByte(set[n.Int64()])
		}
	}
	return b.String(), nil
}
