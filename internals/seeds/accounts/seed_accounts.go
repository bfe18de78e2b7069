package accounts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/users/user/model"
	userService "dayflow_backend/internals/features/users/user/service"
)

type AccountSeed struct {
	Name        string  `yaml:"name"`
	Email       string  `yaml:"email"`
	Password    string  `yaml:"password"`
	Role        string  `yaml:"role"`
	CompanyName string  `yaml:"company_name"`
	Designation string  `yaml:"designation"`
	Department  string  `yaml:"department"`
	Phone       string  `yaml:"phone"`
	MonthlyWage float64 `yaml:"monthly_wage"`
}

type seedFile struct {
	Accounts []AccountSeed `yaml:"accounts"`
}

// DefaultAccounts are the demo logins created when no file is given.
var DefaultAccounts = []AccountSeed{
	{Name: "Admin User", Email: "admin@dayflow.com", Password: "admin123", Role: constants.RoleAdmin,
		CompanyName: "DayFlow HRMS", Designation: "System Administrator", Department: "IT", Phone: "+91-9876543210", MonthlyWage: 80000},
	{Name: "HR Manager", Email: "hr@dayflow.com", Password: "hr123", Role: constants.RoleHR,
		CompanyName: "DayFlow HRMS", Designation: "HR Manager", Department: "Human Resources", Phone: "+91-9876543211", MonthlyWage: 60000},
	{Name: "John Doe", Email: "employee@dayflow.com", Password: "emp123", Role: constants.RoleEmployee,
		CompanyName: "DayFlow HRMS", Designation: "Software Engineer", Department: "Engineering", Phone: "+91-9876543212", MonthlyWage: 50000},
}

// LoadAccounts reads a YAML seed file. An empty path yields DefaultAccounts.
func LoadAccounts(path string) ([]AccountSeed, error) {
	if path == "" {
		return DefaultAccounts, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return f.Accounts, nil
}

type Store interface {
	userService.AccountCreator
	FindByEmail(ctx context.Context, email string) (*model.UserModel, error)
}

type Hasher interface {
	Hash(plain string) (string, error)
}

// SeedAccounts creates every account whose email is not taken yet and returns
// how many were created. Existing accounts are left untouched.
func SeedAccounts(ctx context.Context, store Store, hasher Hasher, seeds []AccountSeed, year int) (int, error) {
	created := 0
	for _, s := range seeds {
		if !constants.IsValidRole(s.Role) {
			return created, fmt.Errorf("seed %s: invalid role %q", s.Email, s.Role)
		}
		if _, err := store.FindByEmail(ctx, s.Email); err == nil {
			log.Printf("[INFO] account %s already exists, skipped", s.Email)
			continue
		} else if !errors.Is(err, model.ErrAccountNotFound) {
			return created, err
		}

		hash, err := hasher.Hash(s.Password)
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", s.Email, err)
		}
		u := &model.UserModel{
			CompanyName: s.CompanyName,
			Name:        s.Name,
			Email:       s.Email,
			Phone:       s.Phone,
			Password:    hash,
			Role:        s.Role,
			Designation: s.Designation,
			Department:  s.Department,
			IsActive:    true,
			SalaryStructure: datatypes.NewJSONType(model.SalaryStructure{
				WageType:    model.WageFixed,
				MonthlyWage: s.MonthlyWage,
			}.Normalized()),
		}
		if err := userService.CreateWithEmployeeID(ctx, store, u, s.CompanyName, year); err != nil {
			return created, fmt.Errorf("seed %s: %w", s.Email, err)
		}
		log.Printf("✅ %s account created: %s (%s)", s.Role, s.Email, u.EmployeeCode())
		created++
	}
	return created, nil
}
