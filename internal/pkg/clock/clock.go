package clock

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/pkg/pubsub"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
)

// TickInterval is how often Run publishes a tick.
const TickInterval = time.Second

// Clock reads wall time on the organization's configured timezone.
type Clock struct {
	loc    atomic.Pointer[time.Location]
	tz     atomic.Value // string
	source func() time.Time
	hub    *pubsub.Hub
}

type Option func(*Clock)

// WithSource replaces time.Now, mainly for tests.
func WithSource(fn func() time.Time) Option {
	return func(c *Clock) { c.source = fn }
}

// WithHub makes Run publish ticks on hub.
func WithHub(hub *pubsub.Hub) Option {
	return func(c *Clock) { c.hub = hub }
}

func New(timezone string, opts ...Option) *Clock {
	c := &Clock{source: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.SetTimezone(timezone)
	return c
}

// SetTimezone switches the clock to a "UTC±H[:MM]" zone.
// An unparseable zone falls back to the machine's local time.
func (c *Clock) SetTimezone(timezone string) {
	if _, ok := timeutil.ParseUTCOffset(timezone); !ok && timezone != "" {
		slog.Warn("Unrecognized organization timezone, using local time", "timezone", timezone)
	}
	c.loc.Store(timeutil.CompanyLocation(timezone))
	c.tz.Store(timezone)
}

// Timezone returns the zone string last passed to SetTimezone.
func (c *Clock) Timezone() string {
	tz, _ := c.tz.Load().(string)
	return tz
}

// Location returns the zone Now reports in.
func (c *Clock) Location() *time.Location {
	return c.loc.Load()
}

// Now returns the current instant on the organization's wall clock.
func (c *Clock) Now() time.Time {
	return c.source().In(c.Location())
}

// Today returns the organization-local date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return timeutil.DateString(c.Now())
}

// Run publishes a tick every second until ctx is cancelled.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if c.hub != nil {
				now := c.Now()
				c.hub.Publish(pubsub.Event{Topic: pubsub.TopicTick, At: now, Data: now})
			}
		}
	}
}
