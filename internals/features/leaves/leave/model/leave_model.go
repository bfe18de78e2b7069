package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dayflow_backend/internals/constants"
	userModel "dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

var ErrLeaveNotFound = apperr.NotFound("LEAVE_NOT_FOUND", "Leave request not found")

type LeaveModel struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID      uuid.UUID            `gorm:"type:uuid;not null;index:idx_leave_employee" json:"employeeId"`
	Employee        *userModel.UserModel `gorm:"foreignKey:EmployeeID" json:"-"`
	StartDate       datatypes.Date       `gorm:"type:date;not null" json:"startDate"`
	EndDate         datatypes.Date       `gorm:"type:date;not null" json:"endDate"`
	LeaveType       string               `gorm:"type:varchar(20);not null" json:"leaveType"`
	Status          string               `gorm:"type:varchar(10);not null;default:'pending';index:idx_leave_status" json:"status"`
	Reason          string               `gorm:"type:text;not null" json:"reason"`
	ApprovedBy      *uuid.UUID           `gorm:"type:uuid" json:"approvedBy,omitempty"`
	Approver        *userModel.UserModel `gorm:"foreignKey:ApprovedBy" json:"-"`
	ApprovalDate    *time.Time           `json:"approvalDate,omitempty"`
	RejectionReason *string              `gorm:"type:text" json:"rejectionReason,omitempty"`
	DaysCount       int                  `gorm:"not null;default:0" json:"daysCount"`
	CreatedAt       time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (LeaveModel) TableName() string {
	return "leave_requests"
}

func (l *LeaveModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = constants.LeaveStatusPending
	}
	l.ComputeDays()
	return nil
}

func (l *LeaveModel) Start() time.Time { return time.Time(l.StartDate) }
func (l *LeaveModel) End() time.Time   { return time.Time(l.EndDate) }

// ComputeDays sets DaysCount to the inclusive span; zero dates are left alone.
func (l *LeaveModel) ComputeDays() {
	if l.Start().IsZero() || l.End().IsZero() {
		return
	}
	l.DaysCount = dbtime.InclusiveDays(l.Start(), l.End())
}

func (l *LeaveModel) IsPending() bool { return l.Status == constants.LeaveStatusPending }
