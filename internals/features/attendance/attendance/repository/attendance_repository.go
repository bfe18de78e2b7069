package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/attendance/attendance/model"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// EnsureForDay returns the record for (employee, day), inserting an empty
// one first if none exists. Concurrent callers converge on the same row.
func (r *AttendanceRepository) EnsureForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (*model.AttendanceModel, error) {
	db := r.db.WithContext(ctx)
	rec := model.AttendanceModel{
		EmployeeID: employeeID,
		Date:       datatypes.Date(day),
		Status:     constants.AttendanceAbsent,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "attendance_date"}},
		DoNothing: true,
	}).Create(&rec).Error
	if err != nil {
		return nil, err
	}

	var out model.AttendanceModel
	if err := db.Where("employee_id = ? AND attendance_date = ?", employeeID, datatypes.Date(day)).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// FindForDay returns nil, nil when there is no record.
func (r *AttendanceRepository) FindForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (*model.AttendanceModel, error) {
	var out model.AttendanceModel
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND attendance_date = ?", employeeID, datatypes.Date(day)).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkCheckIn sets the check-in time only if none is recorded yet.
// It reports false when another check-in got there first.
func (r *AttendanceRepository) MarkCheckIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("id = ? AND check_in_time IS NULL", id).
		Updates(map[string]any{
			"check_in_time": at,
			"status":        constants.AttendancePresent,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkCheckOut sets check-out and working hours once, only after check-in.
func (r *AttendanceRepository) MarkCheckOut(ctx context.Context, id uuid.UUID, at time.Time, hours float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("id = ? AND check_in_time IS NOT NULL AND check_out_time IS NULL", id).
		Updates(map[string]any{
			"check_out_time": at,
			"working_hours":  hours,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// History lists an employee's records, most recent day first. Nil bounds
// are open.
func (r *AttendanceRepository) History(ctx context.Context, employeeID uuid.UUID, from, to *time.Time, limit int) ([]model.AttendanceModel, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if from != nil {
		q = q.Where("attendance_date >= ?", datatypes.Date(*from))
	}
	if to != nil {
		q = q.Where("attendance_date <= ?", datatypes.Date(*to))
	}
	var out []model.AttendanceModel
	err := q.Order("attendance_date DESC").Limit(limit).Find(&out).Error
	return out, err
}

// ListForDate returns every record of day with its employee loaded.
func (r *AttendanceRepository) ListForDate(ctx context.Context, day time.Time) ([]model.AttendanceModel, error) {
	var out []model.AttendanceModel
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("attendance_date = ?", datatypes.Date(day)).
		Order("check_in_time ASC NULLS LAST").
		Find(&out).Error
	return out, err
}

// CountPresentDays counts days in [from, to] with a recorded check-in.
func (r *AttendanceRepository) CountPresentDays(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("employee_id = ? AND attendance_date BETWEEN ? AND ? AND check_in_time IS NOT NULL",
			employeeID, datatypes.Date(from), datatypes.Date(to)).
		Count(&n).Error
	return int(n), err
}
