package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/leaves/leave/model"
	"dayflow_backend/internals/features/leaves/leave/service"
	userDto "dayflow_backend/internals/features/users/user/dto"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

type SubmitLeaveRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	LeaveType string `json:"leaveType" validate:"required"`
	Reason    string `json:"reason" validate:"omitempty,max=1000"`
}

func (r *SubmitLeaveRequest) ToInput() (service.SubmitInput, error) {
	fields := map[string]string{}
	start, err := dbtime.ParseDate(r.StartDate)
	if err != nil {
		fields["startDate"] = err.Error()
	}
	end, err := dbtime.ParseDate(r.EndDate)
	if err != nil {
		fields["endDate"] = err.Error()
	}
	if !constants.IsValidLeaveType(r.LeaveType) {
		fields["leaveType"] = "leaveType must be one of: Paid Time Off, Sick Time Off, Unpaid Leave, Other"
	}
	if len(fields) > 0 {
		return service.SubmitInput{}, apperr.InvalidFields(fields)
	}
	return service.SubmitInput{StartDate: start, EndDate: end, LeaveType: r.LeaveType, Reason: r.Reason}, nil
}

// RejectLeaveRequest takes the reason under "reason"; "rejectionReason" is
// accepted as an alias.
type RejectLeaveRequest struct {
	Reason          string `json:"reason" validate:"omitempty,max=1000"`
	RejectionReason string `json:"rejectionReason" validate:"omitempty,max=1000"`
}

func (r RejectLeaveRequest) Text() string {
	if strings.TrimSpace(r.Reason) != "" {
		return r.Reason
	}
	return r.RejectionReason
}

type LeaveResponse struct {
	ID              uuid.UUID                `json:"id"`
	EmployeeID      uuid.UUID                `json:"employeeId"`
	Employee        *userDto.EmployeeSummary `json:"employee,omitempty"`
	StartDate       string                   `json:"startDate"`
	EndDate         string                   `json:"endDate"`
	LeaveType       string                   `json:"leaveType"`
	Status          string                   `json:"status"`
	Reason          string                   `json:"reason"`
	DaysCount       int                      `json:"daysCount"`
	ApprovedBy      *userDto.EmployeeSummary `json:"approvedBy,omitempty"`
	ApprovalDate    *time.Time               `json:"approvalDate,omitempty"`
	RejectionReason *string                  `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

func ToResponse(l *model.LeaveModel) *LeaveResponse {
	if l == nil {
		return nil
	}
	return &LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		Employee:        userDto.ToSummary(l.Employee),
		StartDate:       l.Start().Format(dbtime.DateLayout),
		EndDate:         l.End().Format(dbtime.DateLayout),
		LeaveType:       l.LeaveType,
		Status:          l.Status,
		Reason:          l.Reason,
		DaysCount:       l.DaysCount,
		ApprovedBy:      userDto.ToSummary(l.Approver),
		ApprovalDate:    l.ApprovalDate,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func ToResponses(ls []model.LeaveModel) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(ls))
	for i := range ls {
		out = append(out, *ToResponse(&ls[i]))
	}
	return out
}
