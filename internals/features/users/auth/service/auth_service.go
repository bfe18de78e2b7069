package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/users/user/model"
	userService "dayflow_backend/internals/features/users/user/service"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

var (
	ErrInvalidCredentials = apperr.Authentication("INVALID_CREDENTIALS", "Invalid email or password")
	ErrUnauthorized       = apperr.Authentication("UNAUTHORIZED", "User not found or inactive")
	ErrForbidden          = apperr.Authorization("FORBIDDEN", "You do not have permission to access this resource")
	ErrWrongPassword      = apperr.Validation("WRONG_PASSWORD", "Current password is incorrect")
	ErrPasswordUnchanged  = apperr.Validation("PASSWORD_UNCHANGED", "New password must differ from the current password")
	ErrInvalidRole        = userService.ErrInvalidRole
)

// AccountStore is the slice of the user repository the auth flows need.
type AccountStore interface {
	userService.AccountCreator
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*model.UserModel, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type AuthService struct {
	store  AccountStore
	hasher *PasswordHasher
	tokens *TokenService
	clock  dbtime.Clock
	loc    *time.Location
}

func NewAuthService(store AccountStore, hasher *PasswordHasher, tokens *TokenService, clock dbtime.Clock, loc *time.Location) *AuthService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AuthService{store: store, hasher: hasher, tokens: tokens, clock: clock, loc: loc}
}

func (s *AuthService) Tokens() *TokenService { return s.tokens }

type RegisterInput struct {
	CompanyName string
	Name        string
	Email       string
	Phone       string
	Password    string
	Role        string
}

// Register creates an account with a hashed password and a generated
// employee id, then issues a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.UserModel, string, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = constants.RoleEmployee
	}
	if !constants.IsValidRole(role) {
		return nil, "", ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	now := s.clock.Now().In(s.loc)
	joined := datatypes.Date(dbtime.DayOf(now, s.loc))
	u := &model.UserModel{
		CompanyName:     in.CompanyName,
		Name:            in.Name,
		Email:           in.Email,
		Phone:           strings.TrimSpace(in.Phone),
		Password:        hash,
		Role:            role,
		JoiningDate:     &joined,
		SalaryStructure: datatypes.NewJSONType(model.SalaryStructure{WageType: model.WageFixed}),
		IsActive:        true,
	}
	u.Normalize()

	if err := userService.CreateWithEmployeeID(ctx, s.store, u, u.CompanyName, now.Year()); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	log.Printf("[INFO] account registered id=%s role=%s", u.ID, u.Role)
	return u, token, nil
}

// VerifyCredentials checks email and password. Unknown email, inactive
// account and wrong password all return ErrInvalidCredentials, and each
// path performs exactly one bcrypt comparison.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*model.UserModel, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			s.hasher.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Internal(err)
	}

	ok := s.hasher.Compare(u.Password, password)
	if !ok || !u.IsActive {
		if ok && !u.IsActive {
			log.Printf("[WARN] sign-in attempt for inactive account id=%s", u.ID)
		}
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.UserModel, string, error) {
	u, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return u, token, nil
}

// Authorize loads the account behind a verified token and checks its role.
// An empty allowed list admits every role.
func (s *AuthService) Authorize(ctx context.Context, accountID uuid.UUID, allowed []string) (*model.UserModel, error) {
	u, err := s.store.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, apperr.Internal(err)
	}
	if !u.IsActive {
		return nil, ErrUnauthorized
	}
	if len(allowed) > 0 && !u.HasRole(allowed...) {
		return nil, ErrForbidden
	}
	return u, nil
}

// ChangePassword replaces the password of acting and clears the
// must-change flags.
func (s *AuthService) ChangePassword(ctx context.Context, acting *model.UserModel, current, next string) error {
	fresh, err := s.store.FindByID(ctx, acting.ID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(fresh.Password, current) {
		return ErrWrongPassword
	}
	if current == next {
		return ErrPasswordUnchanged
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.store.UpdatePassword(ctx, acting.ID, hash); err != nil {
		return err
	}
	log.Printf("[INFO] password changed id=%s", acting.ID)
	return nil
}
