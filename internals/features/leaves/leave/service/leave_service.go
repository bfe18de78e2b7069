package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/leaves/leave/model"
	userModel "dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

var (
	ErrInvalidRange     = apperr.Validation("INVALID_RANGE", "End date must be on or after start date")
	ErrInvalidLeaveType = apperr.Validation("INVALID_LEAVE_TYPE", "Invalid leave type")
	ErrInvalidStatus    = apperr.Validation("INVALID_STATUS", "Invalid leave status")
	ErrLeaveOverlap     = apperr.Conflict("LEAVE_OVERLAP", "Leave request overlaps an existing request")
	ErrNotPending       = apperr.Conflict("NOT_PENDING", "Leave request has already been processed")
	ErrNotDeletable     = apperr.Conflict("NOT_DELETABLE", "Only pending leave requests can be deleted")
	ErrLeaveForbidden   = apperr.Authorization("FORBIDDEN", "Not authorized to delete this leave request")
	ErrLeaveNotFound    = model.ErrLeaveNotFound
)

type Store interface {
	Create(ctx context.Context, l *model.LeaveModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveModel, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.LeaveModel, error)
	ListAll(ctx context.Context, status string) ([]model.LeaveModel, error)
	HasOverlap(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (bool, error)
	Decide(ctx context.Context, id uuid.UUID, status string, decider uuid.UUID, at time.Time, rejectionReason *string) (bool, error)
	DeletePending(ctx context.Context, id uuid.UUID) (bool, error)
	UsedDays(ctx context.Context, employeeID uuid.UUID) (map[string]int, error)
}

type LeaveService struct {
	store Store
	clock dbtime.Clock
}

func NewLeaveService(store Store, clock dbtime.Clock) *LeaveService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	return &LeaveService{store: store, clock: clock}
}

type SubmitInput struct {
	StartDate time.Time
	EndDate   time.Time
	LeaveType string
	Reason    string
}

func (s *LeaveService) Submit(ctx context.Context, acting *userModel.UserModel, in SubmitInput) (*model.LeaveModel, error) {
	if !constants.IsValidLeaveType(in.LeaveType) {
		return nil, ErrInvalidLeaveType
	}
	start := dbtime.DayOf(in.StartDate, time.UTC)
	end := dbtime.DayOf(in.EndDate, time.UTC)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	overlap, err := s.store.HasOverlap(ctx, acting.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if overlap {
		return nil, ErrLeaveOverlap
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = constants.DefaultLeaveReason
	}
	l := &model.LeaveModel{
		EmployeeID: acting.ID,
		StartDate:  datatypes.Date(start),
		EndDate:    datatypes.Date(end),
		LeaveType:  in.LeaveType,
		Status:     constants.LeaveStatusPending,
		Reason:     reason,
	}
	l.ComputeDays()
	if err := s.store.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}
	log.Printf("[INFO] leave submitted id=%s employee=%s days=%d", l.ID, acting.ID, l.DaysCount)
	return l, nil
}

func (s *LeaveService) Approve(ctx context.Context, id uuid.UUID, decider *userModel.UserModel) (*model.LeaveModel, error) {
	return s.decide(ctx, id, decider, constants.LeaveStatusApproved, nil)
}

// Reject records reason, or the default reason when blank.
func (s *LeaveService) Reject(ctx context.Context, id uuid.UUID, decider *userModel.UserModel, reason string) (*model.LeaveModel, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = constants.DefaultLeaveReason
	}
	return s.decide(ctx, id, decider, constants.LeaveStatusRejected, &reason)
}

func (s *LeaveService) decide(ctx context.Context, id uuid.UUID, decider *userModel.UserModel, status string, reason *string) (*model.LeaveModel, error) {
	ok, err := s.store.Decide(ctx, id, status, decider.ID, s.clock.Now(), reason)
	if err != nil {
		return nil, fmt.Errorf("decide leave: %w", err)
	}
	if !ok {
		// missing rows report not found, decided ones not pending
		if _, ferr := s.store.FindByID(ctx, id); ferr != nil {
			return nil, ferr
		}
		return nil, ErrNotPending
	}
	log.Printf("[INFO] leave %s id=%s by=%s", status, id, decider.ID)
	return s.store.FindByID(ctx, id)
}

// Remove deletes a pending request. Only its owner or admin/hr may do so.
func (s *LeaveService) Remove(ctx context.Context, id uuid.UUID, acting *userModel.UserModel) error {
	l, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if l.EmployeeID != acting.ID && !acting.HasRole(constants.AdminOrHR...) {
		return ErrLeaveForbidden
	}
	if !l.IsPending() {
		return ErrNotDeletable
	}
	ok, err := s.store.DeletePending(ctx, id)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if !ok {
		return ErrNotDeletable
	}
	return nil
}

type Balances struct {
	PaidTimeOffAvailable int `json:"paidTimeOffAvailable"`
	PaidTimeOffUsed      int `json:"paidTimeOffUsed"`
	SickTimeOffAvailable int `json:"sickTimeOffAvailable"`
	SickTimeOffUsed      int `json:"sickTimeOffUsed"`
}

func (s *LeaveService) Balances(ctx context.Context, employeeID uuid.UUID) (Balances, error) {
	used, err := s.store.UsedDays(ctx, employeeID)
	if err != nil {
		return Balances{}, fmt.Errorf("sum leave days: %w", err)
	}
	paid := used[constants.LeavePaidTimeOff]
	sick := used[constants.LeaveSickTimeOff]
	return Balances{
		PaidTimeOffAvailable: max(0, constants.PaidTimeOffAllotment-paid),
		PaidTimeOffUsed:      paid,
		SickTimeOffAvailable: max(0, constants.SickTimeOffAllotment-sick),
		SickTimeOffUsed:      sick,
	}, nil
}

// MyLeaves returns the acting employee's requests with their balances.
func (s *LeaveService) MyLeaves(ctx context.Context, acting *userModel.UserModel) ([]model.LeaveModel, Balances, error) {
	list, err := s.store.ListByEmployee(ctx, acting.ID)
	if err != nil {
		return nil, Balances{}, err
	}
	b, err := s.Balances(ctx, acting.ID)
	if err != nil {
		return nil, Balances{}, err
	}
	return list, b, nil
}

// All lists every request; status filters when set.
func (s *LeaveService) All(ctx context.Context, status string) ([]model.LeaveModel, error) {
	status = strings.TrimSpace(strings.ToLower(status))
	switch status {
	case "", constants.LeaveStatusPending, constants.LeaveStatusApproved, constants.LeaveStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}
	return s.store.ListAll(ctx, status)
}
