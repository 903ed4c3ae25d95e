// Package commands provides the erpctl CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unifiedui/erp-client/internal/app"
	"github.com/unifiedui/erp-client/internal/config"
	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/pkg/logging"
)

// Version information set at build time
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

// options are the global flags shared by every command.
type options struct {
	logLevel string
	noColor  bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "erpctl",
		Short: "Console client for the ERP backend",
		Long: `erpctl talks to the ERP backend on behalf of a logged-in user.

The session is persisted between runs; expired access tokens are refreshed
transparently. Run 'erpctl login' once, then use 'erpctl request' for raw API
calls or 'erpctl chat' to ask the assistant.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	root.SetVersionTemplate(fmt.Sprintf("erpctl %s (%s)\n", Version, BuildTime))

	root.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newRequestCmd(opts),
		newChatCmd(opts),
		newConversationsCmd(opts),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// withApp loads configuration, wires the client and, when restore is set,
// resumes the stored session before calling fn.
func (o *options) withApp(cmd *cobra.Command, restore bool, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  o.logLevel,
		Format: "console",
		Output: cmd.ErrOrStderr(),
	})

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Msg("failed to release resources")
		}
	}()

	if restore {
		if _, err := a.Session.Restore(ctx); err != nil {
			return err
		}
	}
	return fn(ctx, a)
}

// printError renders err for a terminal user.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	if domainerrors.IsSessionExpired(err) {
		red.Fprintln(w, "session expired, run 'erpctl login'")
		return
	}
	if domainErr, ok := domainerrors.GetDomainError(err); ok {
		red.Fprintf(w, "error: %s\n", domainErr.Message)
		if domainErr.Details != "" {
			fmt.Fprintln(w, color.New(color.FgHiBlack).Sprint(domainErr.Details))
		}
		return
	}
	red.Fprintf(w, "error: %v\n", err)
}

var errNotLoggedIn = fmt.Errorf("not logged in, run 'erpctl login'")

// requireSession fails when no access token is held after restore.
func requireSession(a *app.App) error {
	if a.Session.AccessToken() == "" {
		return errNotLoggedIn
	}
	return nil
}
