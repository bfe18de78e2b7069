// Package testutil holds in-memory stores that stand in for the GORM
// repositories in service tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dayflow_backend/internals/features/users/user/model"
)

type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.UserModel
	seq   int

	// BeforeCreate runs inside Create before uniqueness checks. Tests use it
	// to simulate another request committing first.
	BeforeCreate func(s *UserStore, u *model.UserModel)
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[uuid.UUID]model.UserModel{}}
}

// Put inserts u unconditionally. The stored copy is returned.
func (s *UserStore) Put(u model.UserModel) model.UserModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(u)
}

func (s *UserStore) putLocked(u model.UserModel) model.UserModel {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		s.seq++
		u.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
	}
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	return u
}

func (s *UserStore) Create(ctx context.Context, u *model.UserModel) error {
	if hook := s.BeforeCreate; hook != nil {
		s.BeforeCreate = nil
		hook(s, u)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u.Normalize()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return model.ErrEmailTaken
		}
		if u.EmployeeID != nil && existing.EmployeeID != nil && *existing.EmployeeID == *u.EmployeeID {
			return model.ErrEmployeeIDTaken
		}
	}
	stored := s.putLocked(*u)
	*u = stored
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = model.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

func (s *UserStore) LastEmployeeIDWithPrefix(ctx context.Context, prefix string, length int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := ""
	for _, u := range s.users {
		id := u.EmployeeCode()
		if utf8.RuneCountInString(id) == length && strings.HasPrefix(id, prefix) && id > best {
			best = id
		}
	}
	return best, nil
}

func (s *UserStore) ListActive(ctx context.Context) ([]model.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.UserModel
	for _, u := range s.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return s.update(id, func(u *model.UserModel) {
		u.Password = hash
		u.MustChangePassword = false
		u.IsPasswordGenerated = false
	})
}

func (s *UserStore) UpdateProfile(ctx context.Context, p *model.UserModel) error {
	return s.update(p.ID, func(u *model.UserModel) {
		u.Name = p.Name
		u.Phone = p.Phone
		u.Address = p.Address
		u.Designation = p.Designation
		u.Department = p.Department
		u.DateOfBirth = p.DateOfBirth
		u.Nationality = p.Nationality
		u.Gender = p.Gender
		u.MaritalStatus = p.MaritalStatus
		u.PersonalEmail = p.PersonalEmail
		u.BankDetails = p.BankDetails
		u.CompanyInfo = p.CompanyInfo
	})
}

func (s *UserStore) UpdateSalary(ctx context.Context, id uuid.UUID, st model.SalaryStructure) error {
	return s.update(id, func(u *model.UserModel) {
		u.SalaryStructure = datatypes.NewJSONType(st)
	})
}

func (s *UserStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.update(id, func(u *model.UserModel) { u.IsActive = false })
}

func (s *UserStore) update(id uuid.UUID, fn func(u *model.UserModel)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	fn(&u)
	s.users[id] = u
	return nil
}
