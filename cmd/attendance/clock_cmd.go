package main

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/geolocation"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
	"github.com/spf13/cobra"
)

func newClockInCmd() *cobra.Command {
	var (
		location   string
		lateReason string
		latitude   float64
		longitude  float64
	)

	cmd := &cobra.Command{
		Use:   "clock-in",
		Short: "Start or resume today's session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var locator geolocation.StaticLocator
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				locator.Position = &geolocation.Position{Latitude: latitude, Longitude: longitude}
			}

			a, err := newApp(cmd.Context(), locator)
			if err != nil {
				return err
			}
			defer a.close()

			a.orchestrator.Reload(cmd.Context(), true)

			res, err := a.orchestrator.ClockIn(cmd.Context(), attendance.ClockInRequest{
				Location:   attendance.Location(location),
				LateReason: lateReason,
			})
			if errors.Is(err, attendance.ErrLateReasonRequired) {
				return fmt.Errorf("%w: pass --reason", err)
			}
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), "Clock in", res)
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", string(attendance.LocationOffice), "Work location: Office, Home or Client Site")
	cmd.Flags().StringVar(&lateReason, "reason", "", "Reason for a late check-in")
	cmd.Flags().Float64Var(&latitude, "lat", 0, "Current latitude")
	cmd.Flags().Float64Var(&longitude, "lon", 0, "Current longitude")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	return cmd
}

func newClockOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock-out",
		Short: "Close the open session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			a.orchestrator.Reload(cmd.Context(), true)

			res, err := a.orchestrator.ClockOut(cmd.Context(), attendance.ClockOutRequest{})
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), "Clock out", res)
			return nil
		},
	}
}

func formatSeconds(s int64) string {
	return timeutil.FormatDuration(s)
}
