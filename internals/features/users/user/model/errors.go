package model

import "dayflow_backend/internals/helpers/apperr"

var (
	ErrAccountNotFound = apperr.NotFound("ACCOUNT_NOT_FOUND", "Employee not found")
	ErrEmailTaken      = apperr.Conflict("EMAIL_TAKEN", "User already exists with this email")
	ErrEmployeeIDTaken = apperr.Conflict("EMPLOYEE_ID_TAKEN", "Employee ID is already assigned")
)
