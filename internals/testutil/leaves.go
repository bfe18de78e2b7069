package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/leaves/leave/model"
	"dayflow_backend/internals/helpers/dbtime"
)

type LeaveStore struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]model.LeaveModel
	seq   int
	users *UserStore
}

// NewLeaveStore; users may be nil when no employee/approver join is needed.
func NewLeaveStore(users *UserStore) *LeaveStore {
	return &LeaveStore{rows: map[uuid.UUID]model.LeaveModel{}, users: users}
}

func (s *LeaveStore) Create(ctx context.Context, l *model.LeaveModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = constants.LeaveStatusPending
	}
	l.ComputeDays()
	s.seq++
	l.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
	l.UpdatedAt = l.CreatedAt
	s.rows[l.ID] = *l
	return nil
}

func (s *LeaveStore) join(ctx context.Context, l model.LeaveModel) model.LeaveModel {
	if s.users == nil {
		return l
	}
	if u, err := s.users.FindByID(ctx, l.EmployeeID); err == nil {
		l.Employee = u
	}
	if l.ApprovedBy != nil {
		if u, err := s.users.FindByID(ctx, *l.ApprovedBy); err == nil {
			l.Approver = u
		}
	}
	return l
}

func (s *LeaveStore) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveModel, error) {
	s.mu.Lock()
	l, ok := s.rows[id]
	s.mu.Unlock()
	if !ok {
		return nil, model.ErrLeaveNotFound
	}
	l = s.join(ctx, l)
	return &l, nil
}

func (s *LeaveStore) list(ctx context.Context, keep func(model.LeaveModel) bool) []model.LeaveModel {
	s.mu.Lock()
	var out []model.LeaveModel
	for _, l := range s.rows {
		if keep(l) {
			out = append(out, l)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for i := range out {
		out[i] = s.join(ctx, out[i])
	}
	return out
}

func (s *LeaveStore) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.LeaveModel, error) {
	return s.list(ctx, func(l model.LeaveModel) bool { return l.EmployeeID == employeeID }), nil
}

func (s *LeaveStore) ListAll(ctx context.Context, status string) ([]model.LeaveModel, error) {
	return s.list(ctx, func(l model.LeaveModel) bool { return status == "" || l.Status == status }), nil
}

func (s *LeaveStore) HasOverlap(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.rows {
		if l.EmployeeID != employeeID || l.Status == constants.LeaveStatusRejected {
			continue
		}
		if dbtime.Overlaps(l.Start(), l.End(), start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *LeaveStore) Decide(ctx context.Context, id uuid.UUID, status string, decider uuid.UUID, at time.Time, rejectionReason *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rows[id]
	if !ok || l.Status != constants.LeaveStatusPending {
		return false, nil
	}
	l.Status = status
	l.ApprovedBy = &decider
	l.ApprovalDate = &at
	l.RejectionReason = rejectionReason
	l.UpdatedAt = at
	s.rows[id] = l
	return true, nil
}

func (s *LeaveStore) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rows[id]
	if !ok || l.Status != constants.LeaveStatusPending {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *LeaveStore) UsedDays(ctx context.Context, employeeID uuid.UUID) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for _, l := range s.rows {
		if l.EmployeeID == employeeID && l.Status == constants.LeaveStatusApproved {
			out[l.LeaveType] += l.DaysCount
		}
	}
	return out, nil
}
