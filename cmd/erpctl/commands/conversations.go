package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unifiedui/erp-client/internal/app"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

func newConversationsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"conv"},
		Short:   "Manage assistant conversations",
	}

	// session runs fn with a restored, logged-in client.
	session := func(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
		return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			if err := requireSession(a); err != nil {
				return err
			}
			return fn(ctx, a)
		})
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List conversations",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return session(cmd, func(ctx context.Context, a *app.App) error {
					list, err := a.Conversations.List(ctx)
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
					for _, conv := range list.Items {
						fmt.Fprintf(w, "%s\t%s\t%s\n", conv.ID, conv.Title, conv.UpdatedAt.Local().Format("2006-01-02 15:04"))
					}
					if err := w.Flush(); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgHiBlack).Sprintf("%d of %d", len(list.Items), list.Total))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print a conversation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return session(cmd, func(ctx context.Context, a *app.App) error {
					conv, err := a.Conversations.Get(ctx, args[0])
					if err != nil {
						return err
					}

					out := cmd.OutOrStdout()
					color.New(color.Bold).Fprintln(out, conv.Title)
					for _, msg := range conv.Messages {
						fmt.Fprintf(out, "%s %s\n", roleLabel(msg.Role), msg.Content)
						for _, call := range msg.ToolCalls {
							fmt.Fprintln(out, color.New(color.FgYellow).Sprintf("  → tool %s(%s)", call.Name, call.Arguments))
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename <id> <title>",
			Short: "Rename a conversation",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return session(cmd, func(ctx context.Context, a *app.App) error {
					return a.Conversations.Rename(ctx, args[0], strings.Join(args[1:], " "))
				})
			},
		},
		&cobra.Command{
			Use:     "delete <id>",
			Aliases: []string{"rm"},
			Short:   "Delete a conversation",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return session(cmd, func(ctx context.Context, a *app.App) error {
					return a.Conversations.Delete(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "suggestions",
			Short: "List suggested prompts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return session(cmd, func(ctx context.Context, a *app.App) error {
					suggestions, err := a.Conversations.Suggestions(ctx)
					if err != nil {
						return err
					}
					for _, s := range suggestions {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.New(color.FgHiBlack).Sprintf("[%s]", s.Category), s.Text)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func roleLabel(role models.MessageRole) string {
	switch role {
	case models.RoleUser:
		return color.New(color.FgCyan, color.Bold).Sprint("you ›")
	case models.RoleAssistant:
		return color.New(color.FgGreen, color.Bold).Sprint("assistant ›")
	default:
		return color.New(color.FgHiBlack).Sprintf("%s ›", role)
	}
}
