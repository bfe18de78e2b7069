package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/attendance/attendance/model"
	userModel "dayflow_backend/internals/features/users/user/model"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
)

const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 366
)

var (
	ErrAlreadyCheckedIn  = apperr.Conflict("ALREADY_CHECKED_IN", "Already checked in today")
	ErrNotCheckedIn      = apperr.Conflict("NOT_CHECKED_IN", "Please check in first")
	ErrAlreadyCheckedOut = apperr.Conflict("ALREADY_CHECKED_OUT", "Already checked out today")
	ErrInvalidRange      = apperr.Validation("INVALID_RANGE", "endDate must be on or after startDate")
)

type Store interface {
	EnsureForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (*model.AttendanceModel, error)
	FindForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (*model.AttendanceModel, error)
	MarkCheckIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkCheckOut(ctx context.Context, id uuid.UUID, at time.Time, hours float64) (bool, error)
	History(ctx context.Context, employeeID uuid.UUID, from, to *time.Time, limit int) ([]model.AttendanceModel, error)
	ListForDate(ctx context.Context, day time.Time) ([]model.AttendanceModel, error)
	CountPresentDays(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int, error)
}

type AttendanceService struct {
	store Store
	clock dbtime.Clock
	loc   *time.Location
}

func NewAttendanceService(store Store, clock dbtime.Clock, loc *time.Location) *AttendanceService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{store: store, clock: clock, loc: loc}
}

// Today is the calendar day in the business timezone.
func (s *AttendanceService) Today() time.Time {
	return dbtime.DayOf(s.clock.Now(), s.loc)
}

// CheckIn records the first check-in of the day. A second call returns
// ErrAlreadyCheckedIn and leaves the first time untouched.
func (s *AttendanceService) CheckIn(ctx context.Context, acting *userModel.UserModel) (*model.AttendanceModel, error) {
	now := s.clock.Now()
	day := dbtime.DayOf(now, s.loc)

	rec, err := s.store.EnsureForDay(ctx, acting.ID, day)
	if err != nil {
		return nil, fmt.Errorf("ensure attendance row: %w", err)
	}
	if rec.CheckedIn() {
		return rec, ErrAlreadyCheckedIn
	}

	ok, err := s.store.MarkCheckIn(ctx, rec.ID, now)
	if err != nil {
		return nil, fmt.Errorf("mark check-in: %w", err)
	}
	fresh, ferr := s.store.FindForDay(ctx, acting.ID, day)
	if ferr != nil {
		return nil, fmt.Errorf("reload attendance: %w", ferr)
	}
	if !ok {
		return fresh, ErrAlreadyCheckedIn
	}
	log.Printf("[INFO] check-in employee=%s day=%s", acting.ID, day.Format(dbtime.DateLayout))
	return fresh, nil
}

// CheckOut closes today's record and stores the worked hours.
func (s *AttendanceService) CheckOut(ctx context.Context, acting *userModel.UserModel) (*model.AttendanceModel, error) {
	now := s.clock.Now()
	day := dbtime.DayOf(now, s.loc)

	rec, err := s.store.FindForDay(ctx, acting.ID, day)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	if rec == nil || !rec.CheckedIn() {
		return nil, ErrNotCheckedIn
	}
	if rec.CheckedOut() {
		return rec, ErrAlreadyCheckedOut
	}

	// check-out never precedes check-in
	if now.Before(*rec.CheckInTime) {
		now = *rec.CheckInTime
	}
	hours := WorkingHours(*rec.CheckInTime, now)

	ok, err := s.store.MarkCheckOut(ctx, rec.ID, now, hours)
	if err != nil {
		return nil, fmt.Errorf("mark check-out: %w", err)
	}
	fresh, ferr := s.store.FindForDay(ctx, acting.ID, day)
	if ferr != nil {
		return nil, fmt.Errorf("reload attendance: %w", ferr)
	}
	if !ok {
		return fresh, ErrAlreadyCheckedOut
	}
	log.Printf("[INFO] check-out employee=%s day=%s hours=%.2f", acting.ID, day.Format(dbtime.DateLayout), hours)
	return fresh, nil
}

// WorkingHours is the span between in and out in hours, rounded to 2 places.
func WorkingHours(in, out time.Time) float64 {
	d := out.Sub(in)
	if d < 0 {
		return 0
	}
	return decimal.NewFromFloat(d.Hours()).Round(2).InexactFloat64()
}

// ExtraHours is the part of total beyond the standard workday.
func ExtraHours(total float64) float64 {
	extra := decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(constants.StandardWorkHours))
	if extra.IsNegative() {
		return 0
	}
	return extra.Round(2).InexactFloat64()
}

type TodayStatus struct {
	Status string
	Record *model.AttendanceModel
}

// TodayStatus reports checked-in while a check-in is open, checked-out
// otherwise (including when there is no record yet).
func (s *AttendanceService) TodayStatus(ctx context.Context, acting *userModel.UserModel) (TodayStatus, error) {
	rec, err := s.store.FindForDay(ctx, acting.ID, s.Today())
	if err != nil {
		return TodayStatus{}, err
	}
	out := TodayStatus{Status: constants.TodayCheckedOut, Record: rec}
	if rec != nil && rec.CheckedIn() && !rec.CheckedOut() {
		out.Status = constants.TodayCheckedIn
	}
	return out, nil
}

type HistoryQuery struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

// Normalize clamps the limit into [1, MaxHistoryLimit], defaulting to
// DefaultHistoryLimit, and checks the range.
func (q *HistoryQuery) Normalize() error {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultHistoryLimit
	case q.Limit > MaxHistoryLimit:
		q.Limit = MaxHistoryLimit
	}
	if q.Start != nil && q.End != nil && q.End.Before(*q.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (s *AttendanceService) History(ctx context.Context, acting *userModel.UserModel, q HistoryQuery) ([]model.AttendanceModel, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return s.store.History(ctx, acting.ID, q.Start, q.End, q.Limit)
}

// AllForDate lists every record of date (today when nil) with employees.
func (s *AttendanceService) AllForDate(ctx context.Context, date *time.Time) ([]model.AttendanceModel, time.Time, error) {
	day := s.Today()
	if date != nil {
		day = *date
	}
	recs, err := s.store.ListForDate(ctx, day)
	return recs, day, err
}

// PresentDays counts the days in [from, to] on which employeeID checked in.
func (s *AttendanceService) PresentDays(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int, error) {
	if to.Before(from) {
		return 0, ErrInvalidRange
	}
	return s.store.CountPresentDays(ctx, employeeID, from, to)
}
