package constants

import "fmt"

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// Role error message templates
const (
	ErrOnlyAdminOrHRCanAccess = "Only admin or HR can access %s"
	ErrOnlySelfCanAccess      = "You can only access your own %s"
)

func RoleErrorAdminOrHR(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminOrHRCanAccess, feature)
}

func RoleErrorSelf(feature string) string {
	return fmt.Sprintf(ErrOnlySelfCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleEmployee,
		RoleHR,
		RoleAdmin,
	}

	AdminOrHR = []string{
		RoleAdmin,
		RoleHR,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func HasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
