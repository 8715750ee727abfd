package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/storage"
)

// ErrNoSession is returned by commands that need a signed-in user.
var ErrNoSession = errors.New("no active session, please log in")

// Session returns the restored session, if any.
func (o *Orchestrator) Session() (auth.Session, bool) {
	s := o.session.Load()
	if s == nil {
		return auth.Session{}, false
	}
	return *s, true
}

// SaveSession persists sess and makes it current.
func (o *Orchestrator) SaveSession(ctx context.Context, sess auth.Session) error {
	if err := o.writeSession(ctx, sess); err != nil {
		return err
	}
	o.session.Store(&sess)
	o.remote.SetToken(sess.AccessToken)
	return nil
}

// ClearSession forgets the persisted session.
func (o *Orchestrator) ClearSession(ctx context.Context) error {
	o.session.Store(nil)
	o.remote.SetToken("")
	return o.slots.Delete(ctx, storage.KeySession)
}

// primeToken hands the persisted token to the API client before fetching.
func (o *Orchestrator) primeToken(ctx context.Context) {
	if s := o.session.Load(); s != nil {
		o.remote.SetToken(s.AccessToken)
		return
	}
	if sess, ok := o.readSession(ctx); ok {
		o.remote.SetToken(sess.AccessToken)
	}
}

// restoreSession makes the persisted session current when its user is part of snap,
// refreshing the stored profile from the loaded employee.
func (o *Orchestrator) restoreSession(ctx context.Context, snap *Snapshot) {
	sess, ok := o.readSession(ctx)
	if !ok {
		o.session.Store(nil)
		return
	}

	emp, found := employee.FindByID(snap.Employees, sess.Employee.ID)
	if !found {
		slog.Info("Persisted session user not in loaded employees", "user_id", sess.Employee.ID, "source", snap.Source)
		o.session.Store(nil)
		return
	}

	fresh := employee.ToResponse(emp)
	if !sameProfile(fresh, sess.Employee) {
		sess.Employee = fresh
		if err := o.writeSession(ctx, sess); err != nil {
			slog.Warn("Failed to persist refreshed session", "error", err)
		}
	}
	o.session.Store(&sess)
	o.remote.SetToken(sess.AccessToken)
}

func (o *Orchestrator) readSession(ctx context.Context) (auth.Session, bool) {
	data, err := o.slots.Get(ctx, storage.KeySession)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("Failed to read session", "error", err)
		}
		return auth.Session{}, false
	}

	var sess auth.Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Employee.ID == "" {
		slog.Warn("Discarding unreadable session", "error", err)
		return auth.Session{}, false
	}
	return sess, true
}

func (o *Orchestrator) writeSession(ctx context.Context, sess auth.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := o.slots.Put(ctx, storage.KeySession, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func sameProfile(a, b employee.EmployeeResponse) bool {
	return a.ID == b.ID &&
		a.FullName == b.FullName &&
		a.Email == b.Email &&
		a.Role == b.Role &&
		equalStringPtr(a.ShiftStart, b.ShiftStart) &&
		equalStringPtr(a.ShiftEnd, b.ShiftEnd)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
