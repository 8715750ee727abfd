package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cmlabs-hris/attendance-sync/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/pubsub"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-sync/internal/service/syncer"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the collections fresh and show a live timer until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a.orchestrator.Reload(ctx, true)

			scheduler := cron.NewScheduler()
			cron.NewSyncJobs(func(ctx context.Context) error {
				a.orchestrator.Reload(ctx, false)
				return nil
			}, a.cfg.ReloadInterval).RegisterJobs(scheduler)

			ticks, unsubscribeTicks := a.hub.Subscribe(pubsub.TopicTick)
			defer unsubscribeTicks()
			reloads, unsubscribeReloads := a.hub.Subscribe(pubsub.TopicReloaded)
			defer unsubscribeReloads()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				scheduler.Start(gctx)
				<-gctx.Done()
				scheduler.Stop()
				return nil
			})
			g.Go(func() error {
				return a.clock.Run(gctx)
			})
			g.Go(func() error {
				w := cmd.OutOrStdout()
				for {
					select {
					case <-gctx.Done():
						fmt.Fprintln(w)
						return nil
					case ev := <-reloads:
						if snap, ok := ev.Data.(*syncer.Snapshot); ok && snap.Offline {
							fmt.Fprintf(w, "\n[%s] offline, showing %s data\n", ev.At.Format("15:04:05"), snap.Source)
						}
					case <-ticks:
						renderTick(w, a)
					}
				}
			})

			err = g.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func renderTick(w io.Writer, a *app) {
	now := a.clock.Now().Format("2006-01-02 15:04:05")
	sess, ok := a.orchestrator.Session()
	if !ok {
		fmt.Fprintf(w, "\r%s  not signed in", now)
		return
	}
	s := a.orchestrator.Summary(sess.Employee.ID)
	syncing := ""
	if a.orchestrator.Syncing() {
		syncing = "  syncing..."
	}
	fmt.Fprintf(w, "\r%s  %-16s worked %s  break %s%s",
		now, s.State, timeutil.FormatDuration(s.WorkedSeconds), timeutil.FormatDuration(s.BreakSeconds), syncing)
}
