package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/attendance-sync/internal/config"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/geolocation"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/pubsub"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-sync/internal/repository/remote"
	attendancesvc "github.com/cmlabs-hris/attendance-sync/internal/service/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/service/syncer"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "attendance",
		Short:         "Clock in and out against the attendance API, offline when it is unreachable",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newClockInCmd())
	cmd.AddCommand(newClockOutCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newWatchCmd())
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// app is everything a command needs, built from the client configuration.
type app struct {
	cfg          *config.ClientConfig
	client       *remote.Client
	clock        *clock.Clock
	hub          *pubsub.Hub
	orchestrator *syncer.Orchestrator
	close        func()
}

// newApp loads configuration and wires the orchestrator. locator may be nil when the
// command never clocks in.
func newApp(ctx context.Context, locator geolocation.Locator) (*app, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	slots, closeSlots, err := openSlots(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	if locator == nil {
		locator = geolocation.StaticLocator{}
	}

	hub := pubsub.NewHub()
	clk := clock.New(cfg.Timezone, clock.WithHub(hub))
	client := remote.NewClient(cfg.APIURL)

	orch := syncer.NewOrchestrator(
		client,
		remote.NewAttendanceStore(client),
		slots,
		clk,
		hub,
		locator,
		syncer.WithProbeTimeout(cfg.ProbeTimeout),
		syncer.WithAttendanceOptions(attendancesvc.WithLocationTimeout(cfg.LocationTimeout)),
	)

	return &app{
		cfg:          cfg,
		client:       client,
		clock:        clk,
		hub:          hub,
		orchestrator: orch,
		close:        closeSlots,
	}, nil
}

func openSlots(ctx context.Context, cfg config.CacheConfig) (storage.SlotStorage, func(), error) {
	switch cfg.Backend {
	case "redis":
		rdb, err := storage.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStorage(rdb, "attendance:", cfg.Redis.TTL), func() { _ = rdb.Close() }, nil
	default:
		local, err := storage.NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return local, func() {}, nil
	}
}
