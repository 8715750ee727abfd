package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/geolocation"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/pubsub"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/storage"
	attendancesvc "github.com/cmlabs-hris/attendance-sync/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

type fakeRemote struct {
	mu          sync.Mutex
	healthErr   error
	rosterErr   error
	healthCalls atomic.Int32
	fetchCalls  atomic.Int32
	gate        chan struct{} // when set, Health blocks until it is closed
	entered     chan struct{}
	token       string

	config    company.SystemConfig
	roster    schedule.Roster
	employees []employee.Employee
}

func (f *fakeRemote) Health(ctx context.Context) error {
	f.healthCalls.Add(1)
	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		<-f.gate
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.healthErr
}

func (f *fakeRemote) FetchConfig(ctx context.Context) (company.SystemConfig, error) {
	f.fetchCalls.Add(1)
	return f.config, nil
}

func (f *fakeRemote) FetchRoster(ctx context.Context) (schedule.Roster, error) {
	f.fetchCalls.Add(1)
	return f.roster, f.rosterErr
}

func (f *fakeRemote) FetchEmployees(ctx context.Context) ([]employee.Employee, error) {
	f.fetchCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.employees, nil
}

func (f *fakeRemote) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeRemote) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

type memoryStore struct {
	mu       sync.Mutex
	records  []attendance.Record
	revision int64
	gate     chan struct{} // when set, FetchAll blocks after reading until it is closed
	entered  chan struct{}
}

func (m *memoryStore) FetchAll(ctx context.Context) (attendance.Collection, error) {
	m.mu.Lock()
	coll := attendance.Collection{Records: attendance.CloneRecords(m.records), Revision: m.revision}
	m.mu.Unlock()

	if m.entered != nil {
		select {
		case m.entered <- struct{}{}:
		default:
		}
	}
	if m.gate != nil {
		<-m.gate
	}
	return coll, nil
}

func (m *memoryStore) appendRecord(rec attendance.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	m.revision++
}

func (m *memoryStore) ReplaceAll(ctx context.Context, records []attendance.Record, revision int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if revision != m.revision {
		return 0, attendance.ErrRevisionConflict
	}
	m.records = attendance.CloneRecords(records)
	m.revision++
	return m.revision, nil
}

type fixture struct {
	remote *fakeRemote
	store  *memoryStore
	slots  *storage.LocalStorage
	clock  *clock.Clock
	hub    *pubsub.Hub
	orch   *Orchestrator
}

// 2024-05-01 09:05:00 at UTC+8.
var testInstant = time.Date(2024, 5, 1, 1, 5, 0, 0, time.UTC)

func newFixture(t *testing.T, locator geolocation.Locator) *fixture {
	t.Helper()
	slots, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	cfg := company.DefaultSystemConfig()
	cfg.CompanyName = "Acme"
	cfg.Timezone = "UTC+8"

	f := &fixture{
		remote: &fakeRemote{
			config: cfg,
			roster: schedule.Roster{Templates: []schedule.ShiftTemplate{{ID: "t1", Name: "Day", StartTime: "09:00"}}},
			employees: []employee.Employee{
				{ID: "u1", FullName: "Rina Putri", Email: "rina@acme.test", Role: employee.RoleEmployee},
				{ID: "u2", FullName: "Bayu", Email: "bayu@acme.test", Role: employee.RoleManager},
			},
		},
		store: &memoryStore{revision: 7, records: []attendance.Record{
			{ID: "r0", UserID: "u2", Date: "2024-04-30", CheckIn: "09:00:00", CheckOut: strPtr("17:00:00"), AccumulatedTime: 28800},
		}},
		slots: slots,
		clock: clock.New("", clock.WithSource(func() time.Time { return testInstant })),
		hub:   pubsub.NewHub(),
	}
	f.orch = NewOrchestrator(f.remote, f.store, f.slots, f.clock, f.hub, locator,
		WithProbeTimeout(time.Second),
		WithAttendanceOptions(attendancesvc.WithLocationTimeout(time.Second)),
	)
	return f
}

func strPtr(s string) *string { return &s }

func (f *fixture) persistSession(t *testing.T, sess auth.Session) {
	t.Helper()
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	require.NoError(t, f.slots.Put(context.Background(), storage.KeySession, data))
}

func TestOrchestrator_StartsOnSeed(t *testing.T) {
	f := newFixture(t, nil)

	snap := f.orch.Snapshot()

	assert.Equal(t, SourceSeed, snap.Source)
	assert.True(t, snap.Offline)
	assert.NotEmpty(t, snap.Employees)
}

func TestOrchestrator_OnlineReload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	reloaded, stop := f.hub.Subscribe(pubsub.TopicReloaded)
	defer stop()

	snap, ran := f.orch.Reload(ctx, false)

	require.True(t, ran)
	assert.Equal(t, SourceRemote, snap.Source)
	assert.False(t, snap.Offline)
	assert.Equal(t, int64(7), snap.Revision)
	assert.Len(t, snap.Attendance, 1)
	assert.Equal(t, "Acme", snap.Config.CompanyName)
	assert.Len(t, snap.Templates(), 1)
	assert.Same(t, snap, f.orch.Snapshot())
	assert.Equal(t, "UTC+8", f.clock.Timezone())
	assert.Equal(t, "2024-05-01", f.clock.Today())

	select {
	case ev := <-reloaded:
		assert.Same(t, snap, ev.Data)
	default:
		t.Fatal("reloaded event not published")
	}

	data, err := f.slots.Get(ctx, storage.KeyCacheSnapshot)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "captured_at")
}

func TestOrchestrator_OfflineUsesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	online, _ := f.orch.Reload(ctx, false)

	f.remote.healthErr = errDown
	fetchesBefore := f.remote.fetchCalls.Load()
	snap, _ := f.orch.Reload(ctx, false)

	assert.Equal(t, fetchesBefore, f.remote.fetchCalls.Load(), "no fetch after a failed probe")
	assert.Equal(t, SourceCache, snap.Source)
	assert.True(t, snap.Offline)
	assert.Equal(t, online.Attendance, snap.Attendance)
	assert.Equal(t, online.Revision, snap.Revision)
	assert.Equal(t, online.Config, snap.Config)
	assert.True(t, online.FetchedAt.Equal(snap.FetchedAt))
}

func TestOrchestrator_OfflineWithoutCacheUsesSeed(t *testing.T) {
	f := newFixture(t, nil)
	f.remote.healthErr = errDown

	snap, _ := f.orch.Reload(context.Background(), true)

	assert.Equal(t, SourceSeed, snap.Source)
	assert.True(t, snap.Offline)
	assert.Empty(t, snap.Attendance)
	assert.Equal(t, "UTC+7", f.clock.Timezone())
}

func TestOrchestrator_FetchFailureGoesOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.orch.Reload(ctx, false)

	f.remote.rosterErr = errDown
	snap, _ := f.orch.Reload(ctx, false)

	assert.Equal(t, SourceCache, snap.Source)
	assert.True(t, snap.Offline)
}

func TestOrchestrator_NonForcedReloadIgnoredWhileInFlight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.remote.gate = make(chan struct{})
	f.remote.entered = make(chan struct{}, 1)

	done := make(chan *Snapshot)
	go func() {
		snap, _ := f.orch.Reload(ctx, false)
		done <- snap
	}()
	<-f.remote.entered

	snap, ran := f.orch.Reload(ctx, false)
	assert.False(t, ran)
	assert.Equal(t, SourceSeed, snap.Source)

	close(f.remote.gate)
	assert.Equal(t, SourceRemote, (<-done).Source)
	assert.Equal(t, int32(1), f.remote.healthCalls.Load())
}

func TestOrchestrator_ForcedReloadWaits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.remote.gate = make(chan struct{})
	f.remote.entered = make(chan struct{}, 1)

	first := make(chan struct{})
	go func() {
		f.orch.Reload(ctx, false)
		close(first)
	}()
	<-f.remote.entered

	forced := make(chan bool)
	go func() {
		_, ran := f.orch.Reload(ctx, true)
		forced <- ran
	}()

	close(f.remote.gate)
	<-first
	assert.True(t, <-forced)
	assert.Equal(t, int32(2), f.remote.healthCalls.Load())
}

func TestOrchestrator_ForcedReloadSeesEarlierWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.store.gate = make(chan struct{})
	f.store.entered = make(chan struct{}, 1)

	first := make(chan *Snapshot)
	go func() {
		snap, _ := f.orch.Reload(ctx, true)
		first <- snap
	}()
	<-f.store.entered

	f.store.appendRecord(attendance.Record{ID: "r1", UserID: "u1", Date: "2024-05-01", CheckIn: "09:00:00"})

	second := make(chan *Snapshot)
	go func() {
		snap, _ := f.orch.Reload(ctx, true)
		second <- snap
	}()

	close(f.store.gate)

	stale := <-first
	assert.Len(t, stale.Attendance, 1)
	assert.Equal(t, int64(7), stale.Revision)

	fresh := <-second
	assert.Len(t, fresh.Attendance, 2)
	assert.Equal(t, int64(8), fresh.Revision)
	assert.Equal(t, int32(2), f.remote.healthCalls.Load())
}

func TestOrchestrator_ForcedReloadIgnoresOtherCallersCancel(t *testing.T) {
	f := newFixture(t, nil)
	f.remote.gate = make(chan struct{})
	f.remote.entered = make(chan struct{}, 1)

	cancelled, cancel := context.WithCancel(context.Background())
	first := make(chan *Snapshot)
	go func() {
		snap, _ := f.orch.Reload(cancelled, true)
		first <- snap
	}()
	<-f.remote.entered

	second := make(chan *Snapshot)
	go func() {
		snap, _ := f.orch.Reload(context.Background(), true)
		second <- snap
	}()

	cancel()
	close(f.remote.gate)

	assert.True(t, (<-first).Offline)
	fresh := <-second
	assert.False(t, fresh.Offline)
	assert.Equal(t, SourceRemote, fresh.Source)
}

func TestOrchestrator_RestoresSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.persistSession(t, auth.Session{
		Employee:    employee.EmployeeResponse{ID: "u1", FullName: "Rina", Email: "rina@acme.test", Role: "employee"},
		AccessToken: "tok",
	})

	f.orch.Reload(ctx, false)

	sess, ok := f.orch.Session()
	require.True(t, ok)
	assert.Equal(t, "Rina Putri", sess.Employee.FullName, "profile refreshed from server data")
	assert.Equal(t, "tok", f.remote.currentToken())

	data, err := f.slots.Get(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rina Putri")
}

func TestOrchestrator_SessionForUnknownUserIsNotRestored(t *testing.T) {
	f := newFixture(t, nil)
	f.persistSession(t, auth.Session{Employee: employee.EmployeeResponse{ID: "ghost"}, AccessToken: "tok"})

	f.orch.Reload(context.Background(), false)

	_, ok := f.orch.Session()
	assert.False(t, ok)
}

func TestOrchestrator_ClockInRequiresSession(t *testing.T) {
	f := newFixture(t, geolocation.StaticLocator{Position: &geolocation.Position{Latitude: 1, Longitude: 1}})

	_, err := f.orch.ClockIn(context.Background(), attendance.ClockInRequest{})

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestOrchestrator_ClockInReloads(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, geolocation.StaticLocator{Position: &geolocation.Position{Latitude: -6.2, Longitude: 106.8}})
	require.NoError(t, f.orch.SaveSession(ctx, auth.Session{
		Employee:    employee.EmployeeResponse{ID: "u1", FullName: "Rina Putri", Email: "rina@acme.test", Role: "employee"},
		AccessToken: "tok",
	}))
	f.orch.Reload(ctx, false)
	syncing, stop := f.hub.Subscribe(pubsub.TopicSyncing)
	defer stop()

	res, err := f.orch.ClockIn(ctx, attendance.ClockInRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeCreated, res.Outcome)
	assert.Equal(t, "2024-05-01", res.Record.Date)
	assert.Equal(t, "09:05:00", res.Record.CheckIn)
	assert.False(t, f.orch.Syncing())
	assert.True(t, (<-syncing).Data.(bool))
	assert.False(t, (<-syncing).Data.(bool))

	snap := f.orch.Snapshot()
	assert.Equal(t, int64(8), snap.Revision)
	assert.Len(t, snap.Attendance, 2)

	summary := f.orch.Summary("u1")
	assert.Equal(t, attendance.StateActive, summary.State)
}

func TestOrchestrator_FailedCommandClearsSyncingAndReloads(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, geolocation.StaticLocator{})
	f.orch.Reload(ctx, false)
	healthBefore := f.remote.healthCalls.Load()

	_, err := f.orch.ClockIn(ctx, attendance.ClockInRequest{UserID: "u1"})

	assert.ErrorIs(t, err, attendance.ErrLocationRequired)
	assert.False(t, f.orch.Syncing())
	assert.Equal(t, healthBefore+1, f.remote.healthCalls.Load())
	assert.Len(t, f.orch.Snapshot().Attendance, 1)
}
