package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"dayflow_backend/internals/features/users/user/model"
)

const (
	DefaultCompanyName = "Company"
	defaultFirstName   = "User"
	defaultLastName    = "Name"

	serialDigits          = 4
	maxEmployeeIDAttempts = 5
)

// EmployeeIDSource looks up the highest id already issued for a prefix.
type EmployeeIDSource interface {
	LastEmployeeIDWithPrefix(ctx context.Context, prefix string, length int) (string, error)
}

// AccountCreator is an EmployeeIDSource that can also insert accounts.
type AccountCreator interface {
	EmployeeIDSource
	Create(ctx context.Context, u *model.UserModel) error
}

// SplitName picks the first and last word of a display name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return defaultFirstName, defaultLastName
	}
	return parts[0], parts[len(parts)-1]
}

func code2(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 2 {
		s = string([]rune(s)[:2])
	}
	return strings.ToUpper(s)
}

// EmployeeIDPrefix builds the company/name/year part of an employee id,
// e.g. Acme, John, Doe, 2025 -> ACJODO2025.
func EmployeeIDPrefix(company, first, last string, year int) string {
	if strings.TrimSpace(company) == "" {
		company = DefaultCompanyName
	}
	if strings.TrimSpace(first) == "" {
		first = defaultFirstName
	}
	if strings.TrimSpace(last) == "" {
		last = defaultLastName
	}
	return code2(company) + code2(first) + code2(last) + strconv.Itoa(year)
}

// GenerateEmployeeID returns prefix + next serial. The serial continues from
// the trailing digits of the greatest id with the same prefix.
func GenerateEmployeeID(ctx context.Context, src EmployeeIDSource, company, first, last string, year int) (string, error) {
	prefix := EmployeeIDPrefix(company, first, last, year)
	length := utf8.RuneCountInString(prefix) + serialDigits

	lastID, err := src.LastEmployeeIDWithPrefix(ctx, prefix, length)
	if err != nil {
		return "", fmt.Errorf("lookup last employee id: %w", err)
	}

	serial := 1
	if lastID != "" {
		n, err := strconv.Atoi(lastID[len(lastID)-serialDigits:])
		if err != nil {
			return "", fmt.Errorf("employee id %q has no numeric serial", lastID)
		}
		serial = n + 1
	}
	if serial >= 10000 {
		return "", fmt.Errorf("employee id serial exhausted for prefix %s", prefix)
	}
	return fmt.Sprintf("%s%0*d", prefix, serialDigits, serial), nil
}

// CreateWithEmployeeID assigns a fresh employee id to u and inserts it. A
// unique violation on employee_id means a concurrent insert took the same
// serial, so the id is regenerated and the insert retried.
func CreateWithEmployeeID(ctx context.Context, store AccountCreator, u *model.UserModel, company string, year int) error {
	first, last := SplitName(u.Name)

	var lastErr error
	for attempt := 0; attempt < maxEmployeeIDAttempts; attempt++ {
		id, err := GenerateEmployeeID(ctx, store, company, first, last, year)
		if err != nil {
			return err
		}
		u.EmployeeID = &id

		err = store.Create(ctx, u)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrEmployeeIDTaken) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("assign employee id after %d attempts: %w", maxEmployeeIDAttempts, lastErr)
}
