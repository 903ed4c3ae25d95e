package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/unifiedui/erp-client/internal/app"
	"github.com/unifiedui/erp-client/internal/core/vault"
)

func newLoginCmd(opts *options) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		Long: `Log in to the ERP backend.

Without --email, ERP_LOGIN_EMAIL and ERP_LOGIN_PASSWORD are read from the
environment or .env. With --email, the password is read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, a *app.App) error {
				password := ""
				if email == "" {
					var err error
					if email, password, err = vault.LoginCredentials(ctx, a.Vault); err != nil {
						return fmt.Errorf("no credentials given: %w", err)
					}
				} else {
					var err error
					if password, err = readPassword(cmd); err != nil {
						return err
					}
				}

				user, err := a.Session.Login(ctx, email, password)
				if err != nil {
					return err
				}

				name := email
				if user != nil && user.Email != "" {
					name = user.Email
				}
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	return cmd
}

// readPassword reads the password without echo when stdin is a terminal and
// as one line otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	errOut := cmd.ErrOrStderr()
	fmt.Fprint(errOut, "Password: ")

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		if len(raw) == 0 {
			return "", fmt.Errorf("password is required")
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				if err := a.Session.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				if err := requireSession(a); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				user := a.Session.CurrentUser()
				if user == nil {
					fmt.Fprintln(out, "Logged in (token carries no identity claims)")
					return nil
				}

				label := color.New(color.FgHiBlack)
				fmt.Fprintf(out, "%s %s\n", label.Sprint("email:      "), user.Email)
				if user.ID != "" {
					fmt.Fprintf(out, "%s %s\n", label.Sprint("user id:    "), user.ID)
				}
				if user.TenantID != "" {
					fmt.Fprintf(out, "%s %s\n", label.Sprint("tenant:     "), user.TenantID)
				}
				fmt.Fprintf(out, "%s %s\n", label.Sprint("permissions:"), strings.Join(user.Permissions, ", "))
				if !user.ExpiresAt.IsZero() {
					fmt.Fprintf(out, "%s %s\n", label.Sprint("expires:    "), user.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
				}
				return nil
			})
		},
	}
}
