package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/leaves/leave/model"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, l *model.LeaveModel) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveModel, error) {
	var l model.LeaveModel
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Approver").
		First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrLeaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByEmployee returns the employee's requests, newest first.
func (r *LeaveRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.LeaveModel, error) {
	var out []model.LeaveModel
	err := r.db.WithContext(ctx).
		Preload("Approver").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListAll returns every request, optionally filtered by status, with both
// employee and approver loaded.
func (r *LeaveRepository) ListAll(ctx context.Context, status string) ([]model.LeaveModel, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Approver").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []model.LeaveModel
	err := q.Find(&out).Error
	return out, err
}

// HasOverlap reports whether a pending or approved request of employeeID
// shares a day with [start, end].
func (r *LeaveRepository) HasOverlap(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.LeaveModel{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{constants.LeaveStatusPending, constants.LeaveStatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&n).Error
	return n > 0, err
}

// Decide moves a pending request to status. False means it was not pending
// (or does not exist) and nothing changed.
func (r *LeaveRepository) Decide(ctx context.Context, id uuid.UUID, status string, decider uuid.UUID, at time.Time, rejectionReason *string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.LeaveModel{}).
		Where("id = ? AND status = ?", id, constants.LeaveStatusPending).
		Updates(map[string]any{
			"status":           status,
			"approved_by":      decider,
			"approval_date":    at,
			"rejection_reason": rejectionReason,
			"updated_at":       at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeletePending removes the request only while it is still pending.
func (r *LeaveRepository) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, constants.LeaveStatusPending).
		Delete(&model.LeaveModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UsedDays sums daysCount of approved requests per leave type.
func (r *LeaveRepository) UsedDays(ctx context.Context, employeeID uuid.UUID) (map[string]int, error) {
	type row struct {
		LeaveType string
		Total     int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.LeaveModel{}).
		Select("leave_type, COALESCE(SUM(days_count), 0) AS total").
		Where("employee_id = ? AND status = ?", employeeID, constants.LeaveStatusApproved).
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.LeaveType] = r.Total
	}
	return out, nil
}
