package dto

import (
	"github.com/google/uuid"

	"dayflow_backend/internals/features/users/auth/service"
	"dayflow_backend/internals/features/users/user/model"
)

type SignupRequest struct {
	CompanyName string `json:"companyName" validate:"omitempty,max=120"`
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Role        string `json:"role" validate:"omitempty,oneof=employee hr admin"`
}

func (r *SignupRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		CompanyName: r.CompanyName,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Password:    r.Password,
		Role:        r.Role,
	}
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// SessionUser is the account block returned with a token.
type SessionUser struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	EmployeeID         string    `json:"employeeId,omitempty"`
	MustChangePassword bool      `json:"mustChangePassword"`
}

func ToSessionUser(u *model.UserModel) SessionUser {
	return SessionUser{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		EmployeeID:         u.EmployeeCode(),
		MustChangePassword: u.MustChangePassword,
	}
}
