package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/storage"
)

// cachedSnapshot is the JSON layout of the cache slot.
type cachedSnapshot struct {
	CapturedAt time.Time                    `json:"captured_at"`
	Revision   int64                        `json:"revision"`
	Attendance []attendance.RecordPayload   `json:"attendance"`
	Config     company.SystemConfigResponse `json:"config"`
	Roster     schedule.RosterResponse      `json:"roster"`
	Employees  []employee.EmployeeResponse  `json:"employees"`
}

func encodeSnapshot(s *Snapshot) ([]byte, error) {
	return json.Marshal(cachedSnapshot{
		CapturedAt: s.FetchedAt,
		Revision:   s.Revision,
		Attendance: attendance.ToPayloads(s.Attendance),
		Config:     company.ToResponse(s.Config),
		Roster:     schedule.ToResponse(s.Roster),
		Employees:  employee.ToResponses(s.Employees),
	})
}

func decodeSnapshot(data []byte) (*Snapshot, error) {
	var c cachedSnapshot
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &Snapshot{
		Attendance: attendance.NormalizeRecords(c.Attendance),
		Revision:   c.Revision,
		Config:     company.FromResponse(c.Config),
		Roster:     schedule.FromResponse(c.Roster),
		Employees:  employee.FromResponses(c.Employees),
		Offline:    true,
		FetchedAt:  c.CapturedAt,
		Source:     SourceCache,
	}, nil
}

// saveCache overwrites the cache slot with s.
func (o *Orchestrator) saveCache(ctx context.Context, s *Snapshot) error {
	data, err := encodeSnapshot(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return o.slots.Put(ctx, storage.KeyCacheSnapshot, data)
}

// loadCache returns the cached snapshot, or false when there is none or it is unreadable.
func (o *Orchestrator) loadCache(ctx context.Context) (*Snapshot, bool) {
	data, err := o.slots.Get(ctx, storage.KeyCacheSnapshot)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("Failed to read snapshot cache", "error", err)
		}
		return nil, false
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		slog.Warn("Discarding unreadable snapshot cache", "error", err)
		return nil, false
	}
	return snap, true
}
