package main

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the organization settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			snap, _ := a.orchestrator.Reload(cmd.Context(), true)
			return writeJSON(cmd.OutOrStdout(), company.ToResponse(snap.Config))
		},
	}
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var (
		companyName    string
		workStart      string
		workEnd        string
		grace          int
		timezone       string
		schedulingMode string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update organization settings (manager or owner only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			snap, _ := a.orchestrator.Reload(cmd.Context(), true)
			if snap.Offline {
				return fmt.Errorf("settings can only be changed while online")
			}

			req := company.UpdateSystemConfigRequest{SystemConfigResponse: company.ToResponse(snap.Config)}
			flags := cmd.Flags()
			if flags.Changed("company-name") {
				req.CompanyName = companyName
			}
			if flags.Changed("work-start") {
				req.WorkStartTime = workStart
			}
			if flags.Changed("work-end") {
				req.WorkEndTime = workEnd
			}
			if flags.Changed("grace") {
				req.GracePeriodMinutes = grace
			}
			if flags.Changed("timezone") {
				req.Timezone = timezone
			}
			if flags.Changed("scheduling-mode") {
				req.SchedulingMode = schedulingMode
			}

			var updated company.SystemConfig
			err = a.orchestrator.Run(cmd.Context(), "update-config", func(ctx context.Context) error {
				if err := req.Validate(); err != nil {
					return err
				}
				updated, err = a.client.UpdateConfig(ctx, req)
				return err
			})
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), company.ToResponse(updated))
		},
	}

	cmd.Flags().StringVar(&companyName, "company-name", "", "Company display name")
	cmd.Flags().StringVar(&workStart, "work-start", "", "Default shift start, HH:MM")
	cmd.Flags().StringVar(&workEnd, "work-end", "", "Default shift end, HH:MM")
	cmd.Flags().IntVar(&grace, "grace", 0, "Grace period in minutes")
	cmd.Flags().StringVar(&timezone, "timezone", "", "Organization timezone, e.g. UTC+7")
	cmd.Flags().StringVar(&schedulingMode, "scheduling-mode", "", "FIXED_SHIFT or WEEKLY_ROSTER")
	return cmd
}
