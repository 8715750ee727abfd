package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/geolocation"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/pubsub"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/storage"
	attendancesvc "github.com/cmlabs-hris/attendance-sync/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeTimeout bounds the health probe that gates online mode.
const DefaultProbeTimeout = 5 * time.Second

// Remote is the read side of the attendance API besides the attendance collection itself.
type Remote interface {
	Health(ctx context.Context) error
	FetchConfig(ctx context.Context) (company.SystemConfig, error)
	FetchRoster(ctx context.Context) (schedule.Roster, error)
	FetchEmployees(ctx context.Context) ([]employee.Employee, error)
	SetToken(token string)
}

// ZoneClock is the organization clock; its timezone follows the loaded config.
type ZoneClock interface {
	Now() time.Time
	SetTimezone(timezone string)
}

// Orchestrator owns the in-memory collections. It reloads them from the API,
// falls back to the local cache or the seed when offline, and restores the session.
type Orchestrator struct {
	remote       Remote
	store        attendance.Store
	slots        storage.SlotStorage
	clock        ZoneClock
	hub          *pubsub.Hub
	attendance   attendance.AttendanceService
	probeTimeout time.Duration

	reloadMu sync.Mutex

	snapshot atomic.Pointer[Snapshot]
	session  atomic.Pointer[auth.Session]
	syncing  atomic.Bool
}

type Option func(*orchestratorOptions)

type orchestratorOptions struct {
	probeTimeout      time.Duration
	attendanceOptions []attendancesvc.Option
}

// WithProbeTimeout overrides DefaultProbeTimeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(o *orchestratorOptions) { o.probeTimeout = d }
}

// WithAttendanceOptions passes options through to the clock command service.
func WithAttendanceOptions(opts ...attendancesvc.Option) Option {
	return func(o *orchestratorOptions) { o.attendanceOptions = append(o.attendanceOptions, opts...) }
}

// NewOrchestrator starts out on the seed snapshot until the first Reload.
func NewOrchestrator(
	remote Remote,
	store attendance.Store,
	slots storage.SlotStorage,
	clock ZoneClock,
	hub *pubsub.Hub,
	locator geolocation.Locator,
	opts ...Option,
) *Orchestrator {
	options := orchestratorOptions{probeTimeout: DefaultProbeTimeout}
	for _, opt := range opts {
		opt(&options)
	}
	if hub == nil {
		hub = pubsub.NewHub()
	}

	o := &Orchestrator{
		remote:       remote,
		store:        store,
		slots:        slots,
		clock:        clock,
		hub:          hub,
		probeTimeout: options.probeTimeout,
	}
	o.attendance = attendancesvc.NewAttendanceService(store, o, clock, locator, options.attendanceOptions...)
	o.snapshot.Store(seedSnapshot(clock.Now()))
	return o
}

// Snapshot returns the current committed snapshot.
func (o *Orchestrator) Snapshot() *Snapshot {
	return o.snapshot.Load()
}

// Reference implements attendancesvc.ReferenceSource.
func (o *Orchestrator) Reference() attendancesvc.Reference {
	return o.Snapshot().Reference()
}

// Syncing reports whether a mutating command is in flight.
func (o *Orchestrator) Syncing() bool {
	return o.syncing.Load()
}

// Hub returns the hub reload and syncing events are published on.
func (o *Orchestrator) Hub() *pubsub.Hub {
	return o.hub
}

// Reload refreshes every collection. A non-forced call made while another reload is
// running is ignored and returns the current snapshot with ran == false. A forced call
// waits for the running reload and then runs its own, so it always observes writes
// made before it was issued.
func (o *Orchestrator) Reload(ctx context.Context, force bool) (snap *Snapshot, ran bool) {
	if force {
		o.reloadMu.Lock()
	} else if !o.reloadMu.TryLock() {
		slog.Debug("Reload already in flight, ignoring request")
		return o.Snapshot(), false
	}
	defer o.reloadMu.Unlock()
	return o.reload(ctx), true
}

func (o *Orchestrator) reload(ctx context.Context) *Snapshot {
	start := time.Now()
	o.primeToken(ctx)

	snap, err := o.fetch(ctx)
	if err != nil {
		slog.Warn("Remote unavailable, using offline data", "error", err)
		snap = o.offlineSnapshot(ctx)
	} else if err := o.saveCache(ctx, snap); err != nil {
		slog.Warn("Failed to persist snapshot cache", "error", err)
	}

	o.commit(ctx, snap)

	slog.Info("Reload completed",
		"source", snap.Source,
		"offline", snap.Offline,
		"records", len(snap.Attendance),
		"duration", time.Since(start))
	return snap
}

// fetch probes the API and then loads every collection in parallel.
func (o *Orchestrator) fetch(ctx context.Context) (*Snapshot, error) {
	probeCtx, cancel := context.WithTimeout(ctx, o.probeTimeout)
	err := o.remote.Health(probeCtx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("health probe failed: %w", err)
	}

	snap := &Snapshot{Source: SourceRemote}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		coll, err := o.store.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch attendance: %w", err)
		}
		snap.Attendance, snap.Revision = coll.Records, coll.Revision
		return nil
	})
	g.Go(func() error {
		cfg, err := o.remote.FetchConfig(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch config: %w", err)
		}
		snap.Config = cfg
		return nil
	})
	g.Go(func() error {
		roster, err := o.remote.FetchRoster(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch roster: %w", err)
		}
		snap.Roster = roster
		return nil
	})
	g.Go(func() error {
		emps, err := o.remote.FetchEmployees(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch employees: %w", err)
		}
		snap.Employees = emps
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.FetchedAt = o.clock.Now()
	return snap, nil
}

func (o *Orchestrator) offlineSnapshot(ctx context.Context) *Snapshot {
	if snap, ok := o.loadCache(ctx); ok {
		return snap
	}
	return seedSnapshot(o.clock.Now())
}

// commit publishes snap as the current state. The timezone is switched first so
// readers never pair a new snapshot with the old zone.
func (o *Orchestrator) commit(ctx context.Context, snap *Snapshot) {
	o.clock.SetTimezone(snap.Config.Timezone)
	o.snapshot.Store(snap)
	o.restoreSession(ctx, snap)

	o.hub.Publish(pubsub.Event{Topic: pubsub.TopicReloaded, At: o.clock.Now(), Data: snap})
}

// Run executes a mutating command with the syncing indicator raised, logs a failure,
// and always follows up with a forced reload.
func (o *Orchestrator) Run(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	o.setSyncing(true)
	err := fn(ctx)
	o.setSyncing(false)

	if err != nil {
		slog.Error("Command failed", "command", name, "error", err)
	}

	o.Reload(ctx, true)
	return err
}

func (o *Orchestrator) setSyncing(v bool) {
	o.syncing.Store(v)
	o.hub.Publish(pubsub.Event{Topic: pubsub.TopicSyncing, At: o.clock.Now(), Data: v})
}
