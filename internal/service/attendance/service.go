package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/geolocation"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
	"github.com/google/uuid"
)

// maxWriteAttempts bounds read-modify-write retries on a revision conflict.
const maxWriteAttempts = 3

// Clock is the organization wall clock.
type Clock interface {
	Now() time.Time
}

// ReferenceSource supplies the organization data last loaded by the sync layer.
type ReferenceSource interface {
	Reference() Reference
}

type AttendanceServiceImpl struct {
	attendance.Store
	reference       ReferenceSource
	clock           Clock
	locator         geolocation.Locator
	locationTimeout time.Duration
	newID           func() string
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResult{}, err
	}

	var pos *geolocation.Position

	for attempt := 1; ; attempt++ {
		coll, err := s.Store.FetchAll(ctx)
		if err != nil {
			return attendance.ClockResult{}, fmt.Errorf("failed to fetch attendance: %w", err)
		}

		now := s.clock.Now()
		today := timeutil.DateString(now)

		// Already clocked in: nothing to capture, nothing to write.
		if open, ok := OpenRecord(coll.Records, req.UserID); ok && open.Date >= today {
			return attendance.ClockResult{Outcome: attendance.OutcomeNoop, Record: &open}, nil
		}

		late := false
		if DayState(coll.Records, req.UserID, today) == attendance.StateNotStarted {
			late = IsLate(s.reference.Reference(), req.UserID, now)
			if late && req.LateReason == "" {
				return attendance.ClockResult{Late: true}, attendance.ErrLateReasonRequired
			}
		}

		if pos == nil {
			p, err := geolocation.Capture(ctx, s.locator, s.locationTimeout, true)
			if err != nil {
				return attendance.ClockResult{}, fmt.Errorf("%w: %w", attendance.ErrLocationRequired, err)
			}
			pos = &p
		}

		lat, lon := pos.Latitude, pos.Longitude
		records, result := ApplyClockIn(coll.Records, ClockInParams{
			UserID:     req.UserID,
			Now:        now,
			Location:   req.Location,
			Latitude:   &lat,
			Longitude:  &lon,
			LateReason: req.LateReason,
			NewID:      s.newID,
		})
		result.Late = late
		if result.Outcome == attendance.OutcomeNoop {
			return result, nil
		}

		_, err = s.Store.ReplaceAll(ctx, records, coll.Revision)
		if err == nil {
			slog.Info("Clock in recorded",
				"user_id", req.UserID,
				"outcome", result.Outcome,
				"record_id", result.Record.ID,
				"late", late)
			return result, nil
		}
		if !errors.Is(err, attendance.ErrRevisionConflict) || attempt >= maxWriteAttempts {
			return attendance.ClockResult{}, fmt.Errorf("failed to save attendance: %w", err)
		}
		slog.Warn("Attendance revision conflict, retrying clock in", "user_id", req.UserID, "attempt", attempt)
	}
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResult{}, err
	}

	for attempt := 1; ; attempt++ {
		coll, err := s.Store.FetchAll(ctx)
		if err != nil {
			return attendance.ClockResult{}, fmt.Errorf("failed to fetch attendance: %w", err)
		}

		records, result := ApplyClockOut(coll.Records, req.UserID, s.clock.Now())
		if result.Outcome == attendance.OutcomeNoop {
			return result, nil
		}

		_, err = s.Store.ReplaceAll(ctx, records, coll.Revision)
		if err == nil {
			slog.Info("Clock out recorded",
				"user_id", req.UserID,
				"record_id", result.Record.ID,
				"accumulated_seconds", result.Record.AccumulatedTime)
			return result, nil
		}
		if !errors.Is(err, attendance.ErrRevisionConflict) || attempt >= maxWriteAttempts {
			return attendance.ClockResult{}, fmt.Errorf("failed to save attendance: %w", err)
		}
		slog.Warn("Attendance revision conflict, retrying clock out", "user_id", req.UserID, "attempt", attempt)
	}
}

// Option customizes the attendance service.
type Option func(*AttendanceServiceImpl)

// WithLocationTimeout overrides geolocation.DefaultTimeout.
func WithLocationTimeout(d time.Duration) Option {
	return func(s *AttendanceServiceImpl) { s.locationTimeout = d }
}

// WithIDGenerator replaces the UUIDv7 record id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *AttendanceServiceImpl) { s.newID = fn }
}

func NewAttendanceService(
	store attendance.Store,
	reference ReferenceSource,
	clock Clock,
	locator geolocation.Locator,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		Store:           store,
		reference:       reference,
		clock:           clock,
		locator:         locator,
		locationTimeout: geolocation.DefaultTimeout,
		newID:           newRecordID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
