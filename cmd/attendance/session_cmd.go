package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			resp, err := a.client.Login(cmd.Context(), auth.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := a.orchestrator.SaveSession(cmd.Context(), auth.NewSession(resp, a.clock.Now())); err != nil {
				return err
			}

			a.orchestrator.Reload(cmd.Context(), true)
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", resp.Employee.FullName, resp.Employee.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.orchestrator.ClearSession(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}
