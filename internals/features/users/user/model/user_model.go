package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dayflow_backend/internals/constants"
)

type BankDetails struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSCCode      string `json:"ifscCode"`
	PANNumber     string `json:"panNumber"`
	UANNumber     string `json:"uanNumber"`
	EmpCode       string `json:"empCode"`
}

type CompanyInfo struct {
	Company    string `json:"company"`
	Department string `json:"department"`
	Manager    string `json:"manager"`
	Location   string `json:"location"`
}

// UserModel is one row of the users table. Every person in the system
// (employee, hr, admin) is an account.
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyName string    `gorm:"size:120" json:"companyName,omitempty"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Email       string    `gorm:"size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Phone       string    `gorm:"size:30" json:"phone,omitempty"`
	Password    string    `gorm:"column:password_hash;not null" json:"-"`
	EmployeeID  *string   `gorm:"column:employee_id;size:32;uniqueIndex:uq_users_employee_id" json:"employeeId,omitempty"`
	Role        string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`

	Designation string          `gorm:"size:120" json:"designation,omitempty"`
	Department  string          `gorm:"size:120" json:"department,omitempty"`
	JoiningDate *datatypes.Date `gorm:"type:date" json:"joiningDate,omitempty"`

	SalaryStructure datatypes.JSONType[SalaryStructure] `gorm:"type:jsonb;not null;default:'{}'" json:"salaryStructure"`

	IsActive            bool `gorm:"not null;default:true" json:"isActive"`
	IsPasswordGenerated bool `gorm:"not null;default:false" json:"isPasswordGenerated"`
	MustChangePassword  bool `gorm:"not null;default:false" json:"mustChangePassword"`

	Address       string          `gorm:"size:255" json:"address,omitempty"`
	DateOfBirth   *datatypes.Date `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Nationality   string          `gorm:"size:60" json:"nationality,omitempty"`
	Gender        string          `gorm:"size:10" json:"gender,omitempty"`
	MaritalStatus string          `gorm:"size:10" json:"maritalStatus,omitempty"`
	PersonalEmail string          `gorm:"size:255" json:"personalEmail,omitempty"`

	BankDetails datatypes.JSONType[BankDetails] `gorm:"type:jsonb;not null;default:'{}'" json:"bankDetails"`
	CompanyInfo datatypes.JSONType[CompanyInfo] `gorm:"type:jsonb;not null;default:'{}'" json:"companyInfo"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (UserModel) TableName() string {
	return "users"
}

// ProfileColumns are the columns a profile update may touch.
var ProfileColumns = []string{
	"name", "phone", "address", "designation", "department", "date_of_birth",
	"nationality", "gender", "marital_status", "personal_email",
	"bank_details", "company_info",
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Normalize()
	return nil
}

// Normalize trims identity fields and applies defaults.
func (u *UserModel) Normalize() {
	u.Email = NormalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	u.CompanyName = strings.TrimSpace(u.CompanyName)
	if u.Role == "" {
		u.Role = constants.RoleEmployee
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UserModel) HasRole(roles ...string) bool {
	return constants.HasRole(u.Role, roles)
}

// EmployeeCode returns the assigned employee id or "".
func (u *UserModel) EmployeeCode() string {
	if u.EmployeeID == nil {
		return ""
	}
	return *u.EmployeeID
}
