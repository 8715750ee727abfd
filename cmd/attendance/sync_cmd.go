package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reload every collection from the API, or from the cache when offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			snap, _ := a.orchestrator.Reload(cmd.Context(), true)
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

type statusOutput struct {
	Source     string `json:"source"`
	Offline    bool   `json:"offline"`
	Revision   int64  `json:"revision"`
	Timezone   string `json:"timezone"`
	Now        string `json:"now"`
	UserID     string `json:"user_id,omitempty"`
	State      string `json:"state,omitempty"`
	WorkedTime string `json:"worked_time,omitempty"`
	BreakTime  string `json:"break_time,omitempty"`
}

func newStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in user's attendance for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			snap, _ := a.orchestrator.Reload(cmd.Context(), true)
			sess, signedIn := a.orchestrator.Session()

			if asJSON {
				out := statusOutput{
					Source:   string(snap.Source),
					Offline:  snap.Offline,
					Revision: snap.Revision,
					Timezone: snap.Config.Timezone,
					Now:      a.clock.Now().Format("2006-01-02 15:04:05"),
				}
				if signedIn {
					s := a.orchestrator.Summary(sess.Employee.ID)
					out.UserID = s.UserID
					out.State = string(s.State)
					out.WorkedTime = formatSeconds(s.WorkedSeconds)
					out.BreakTime = formatSeconds(s.BreakSeconds)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			printSnapshot(w, snap)
			if !signedIn {
				fmt.Fprintln(w, "Not signed in")
				return nil
			}
			fmt.Fprintf(w, "User:      %s\n", sess.Employee.FullName)
			printSummary(w, a.orchestrator.Summary(sess.Employee.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print machine-readable output")
	return cmd
}
