package dto

import (
	"time"

	"github.com/google/uuid"

	"dayflow_backend/internals/features/attendance/attendance/model"
	"dayflow_backend/internals/features/attendance/attendance/service"
	userDto "dayflow_backend/internals/features/users/user/dto"
	"dayflow_backend/internals/helpers/dbtime"
)

type AttendanceResponse struct {
	ID           uuid.UUID                `json:"id"`
	EmployeeID   uuid.UUID                `json:"employeeId"`
	Employee     *userDto.EmployeeSummary `json:"employee,omitempty"`
	Date         string                   `json:"date"`
	CheckInTime  *time.Time               `json:"checkInTime"`
	CheckOutTime *time.Time               `json:"checkOutTime"`
	Status       string                   `json:"status"`
	WorkHours    float64                  `json:"workHours"`
	ExtraHours   float64                  `json:"extraHours"`
	Notes        *string                  `json:"notes,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

func ToResponse(m *model.AttendanceModel) *AttendanceResponse {
	if m == nil {
		return nil
	}
	return &AttendanceResponse{
		ID:           m.ID,
		EmployeeID:   m.EmployeeID,
		Employee:     userDto.ToSummary(m.Employee),
		Date:         m.Day().Format(dbtime.DateLayout),
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		Status:       m.Status,
		WorkHours:    m.WorkingHours,
		ExtraHours:   service.ExtraHours(m.WorkingHours),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToResponses(ms []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *ToResponse(&ms[i]))
	}
	return out
}
