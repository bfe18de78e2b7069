package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/attendance/attendance/model"
)

type dayKey struct {
	employee uuid.UUID
	day      string
}

type AttendanceStore struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*model.AttendanceModel
	byDay map[dayKey]uuid.UUID
	users *UserStore

	// AfterEnsure runs after EnsureForDay returns, before the caller's
	// conditional update. Tests use it to interleave a competing request.
	AfterEnsure func(s *AttendanceStore, rec *model.AttendanceModel)
}

// NewAttendanceStore; users may be nil when listings need no employee join.
func NewAttendanceStore(users *UserStore) *AttendanceStore {
	return &AttendanceStore{
		rows:  map[uuid.UUID]*model.AttendanceModel{},
		byDay: map[dayKey]uuid.UUID{},
		users: users,
	}
}

func key(employee uuid.UUID, day time.Time) dayKey {
	return dayKey{employee: employee, day: day.Format("2006-01-02")}
}

// Put stores rec as is, replacing any record of the same employee and day.
func (s *AttendanceStore) Put(rec model.AttendanceModel) model.AttendanceModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = constants.AttendanceAbsent
	}
	s.rows[rec.ID] = &rec
	s.byDay[key(rec.EmployeeID, rec.Day())] = rec.ID
	return rec
}

func (s *AttendanceStore) EnsureForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (*model.AttendanceModel, error) {
	s.mu.Lock()
	k := key(employeeID, day)
	id, ok := s.byDay[k]
	if !ok {
		rec := &model.AttendanceModel{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       datatypes.Date(day),
			Status:     constants.AttendanceAbsent,
		}
		s.rows[rec.ID] = rec
		s.byDay[k] = rec.ID
		id = rec.ID
	}
	cp := *s.rows[id]
	s.mu.Unlock()

	if hook := s.AfterEnsure; hook != nil {
		s.AfterEnsure = nil
		hook(s, &cp)
	}
	return &cp, nil
}

func (s *AttendanceStore) FindForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (*model.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byDay[key(employeeID, day)]
	if !ok {
		return nil, nil
	}
	cp := *s.rows[id]
	return &cp, nil
}

func (s *AttendanceStore) MarkCheckIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rows[id]
	if !ok || rec.CheckInTime != nil {
		return false, nil
	}
	rec.CheckInTime = &at
	rec.Status = constants.AttendancePresent
	return true, nil
}

func (s *AttendanceStore) MarkCheckOut(ctx context.Context, id uuid.UUID, at time.Time, hours float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rows[id]
	if !ok || rec.CheckInTime == nil || rec.CheckOutTime != nil {
		return false, nil
	}
	rec.CheckOutTime = &at
	rec.WorkingHours = hours
	return true, nil
}

func (s *AttendanceStore) History(ctx context.Context, employeeID uuid.UUID, from, to *time.Time, limit int) ([]model.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AttendanceModel
	for _, r := range s.rows {
		if r.EmployeeID != employeeID {
			continue
		}
		if from != nil && r.Day().Before(*from) {
			continue
		}
		if to != nil && r.Day().After(*to) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day().After(out[j].Day()) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AttendanceStore) ListForDate(ctx context.Context, day time.Time) ([]model.AttendanceModel, error) {
	s.mu.Lock()
	var out []model.AttendanceModel
	want := day.Format("2006-01-02")
	for _, r := range s.rows {
		if r.Day().Format("2006-01-02") == want {
			out = append(out, *r)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID.String() < out[j].EmployeeID.String() })
	if s.users != nil {
		for i := range out {
			if u, err := s.users.FindByID(ctx, out[i].EmployeeID); err == nil {
				out[i].Employee = u
			}
		}
	}
	return out, nil
}

func (s *AttendanceStore) CountPresentDays(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if r.EmployeeID == employeeID && r.CheckInTime != nil && !r.Day().Before(from) && !r.Day().After(to) {
			n++
		}
	}
	return n, nil
}
