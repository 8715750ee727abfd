package syncer

import (
	"context"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	attendancesvc "github.com/cmlabs-hris/attendance-sync/internal/service/attendance"
)

// ClockIn clocks in the session user, or req.UserID when set, then reloads.
func (o *Orchestrator) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockResult, error) {
	if req.UserID == "" {
		sess, ok := o.Session()
		if !ok {
			return attendance.ClockResult{}, ErrNoSession
		}
		req.UserID = sess.Employee.ID
	}

	var result attendance.ClockResult
	err := o.Run(ctx, "clock-in", func(ctx context.Context) error {
		var err error
		result, err = o.attendance.ClockIn(ctx, req)
		return err
	})
	return result, err
}

// ClockOut clocks out the session user, or req.UserID when set, then reloads.
func (o *Orchestrator) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockResult, error) {
	if req.UserID == "" {
		sess, ok := o.Session()
		if !ok {
			return attendance.ClockResult{}, ErrNoSession
		}
		req.UserID = sess.Employee.ID
	}

	var result attendance.ClockResult
	err := o.Run(ctx, "clock-out", func(ctx context.Context) error {
		var err error
		result, err = o.attendance.ClockOut(ctx, req)
		return err
	})
	return result, err
}

// Summary computes the live daily summary for userID from the current snapshot.
func (o *Orchestrator) Summary(userID string) attendancesvc.DailySummary {
	snap := o.Snapshot()
	return attendancesvc.Summarize(snap.Attendance, snap.Reference(), userID, o.clock.Now())
}
