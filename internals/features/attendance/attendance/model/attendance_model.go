package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "dayflow_backend/internals/features/users/user/model"
)

// AttendanceModel is one employee's record for one calendar day. The pair
// (employee_id, attendance_date) is unique.
type AttendanceModel struct {
	ID           uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID   uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_day,priority:1" json:"employeeId"`
	Employee     *userModel.UserModel `gorm:"foreignKey:EmployeeID" json:"-"`
	Date         datatypes.Date       `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_day,priority:2" json:"date"`
	CheckInTime  *time.Time           `json:"checkInTime"`
	CheckOutTime *time.Time           `json:"checkOutTime"`
	Status       string               `gorm:"type:varchar(10);not null;default:'absent'" json:"status"`
	WorkingHours float64              `gorm:"type:numeric(5,2);not null;default:0" json:"workingHours"`
	Notes        *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (AttendanceModel) TableName() string {
	return "attendances"
}

func (a *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *AttendanceModel) Day() time.Time { return time.Time(a.Date) }

func (a *AttendanceModel) CheckedIn() bool  { return a.CheckInTime != nil }
func (a *AttendanceModel) CheckedOut() bool { return a.CheckOutTime != nil }
