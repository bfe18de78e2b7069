package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dayflow_backend/internals/features/users/user/model"
)

const pgUniqueViolation = "23505"

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *model.UserModel) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var u model.UserModel
	err := r.db.WithContext(ctx).
		Where("email = ?", model.NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}
	return &u, nil
}

// LastEmployeeIDWithPrefix returns the greatest employee id of exactly
// length characters that starts with prefix, or "" when there is none.
func (r *UserRepository) LastEmployeeIDWithPrefix(ctx context.Context, prefix string, length int) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where(`employee_id LIKE ? ESCAPE '\' AND char_length(employee_id) = ?`, escapeLike(prefix)+"%", length).
		Order("employee_id DESC").
		Limit(1).
		Pluck("employee_id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (r *UserRepository) ListActive(ctx context.Context) ([]model.UserModel, error) {
	var out []model.UserModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// UpdatePassword stores a new hash and clears the generated-password flags.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":         hash,
			"must_change_password":  false,
			"is_password_generated": false,
		})
	return rowsOrNotFound(res)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *model.UserModel) error {
	res := r.db.WithContext(ctx).
		Model(&model.UserModel{ID: u.ID}).
		Select(model.ProfileColumns).
		Updates(u)
	return rowsOrNotFound(res)
}

func (r *UserRepository) UpdateSalary(ctx context.Context, id uuid.UUID, s model.SalaryStructure) error {
	res := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("salary_structure", datatypes.NewJSONType(s))
	return rowsOrNotFound(res)
}

func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	return rowsOrNotFound(res)
}

func rowsOrNotFound(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// mapWriteError turns unique violations on users into domain conflicts.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "employee_id"):
		return model.ErrEmployeeIDTaken.WithCause(err)
	case strings.Contains(pgErr.ConstraintName, "email"):
		return model.ErrEmailTaken.WithCause(err)
	default:
		return err
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
