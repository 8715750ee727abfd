package cron

import (
	"context"
	"time"
)

// DefaultReloadInterval is how often a watching client refreshes its collections.
const DefaultReloadInterval = 30 * time.Second

// SyncJobs keeps a long-running client in step with the API.
type SyncJobs struct {
	reload   func(ctx context.Context) error
	interval time.Duration
}

// NewSyncJobs wraps reload, typically a non-forced orchestrator reload.
func NewSyncJobs(reload func(ctx context.Context) error, interval time.Duration) *SyncJobs {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}
	return &SyncJobs{reload: reload, interval: interval}
}

func (j *SyncJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reload_collections", j.interval, j.reload)
}
