package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/unifiedui/erp-client/internal/app"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

func newChatCmd(opts *options) *cobra.Command {
	var conversationID string

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the assistant and stream the reply",
		Long: `Send a message to the assistant and print the reply as it streams.

Ctrl-C stops the reply and keeps what was received so far. Without
--conversation a new conversation is started and its id is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				if err := requireSession(a); err != nil {
					return err
				}

				sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
				defer stop()

				r := newRenderer(cmd.OutOrStdout())
				subCtx, unsubscribe := context.WithCancel(ctx)
				rendered := make(chan struct{})
				updates := a.Chat.Subscribe(subCtx)
				go func() {
					defer close(rendered)
					for snap := range updates {
						r.render(snap)
					}
				}()

				learned := a.Chat.Send(sigCtx, conversationID, message)

				unsubscribe()
				<-rendered
				final := a.Chat.Snapshot()
				r.render(final)

				return r.finish(cmd.ErrOrStderr(), final, learned)
			})
		},
	}

	cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "Continue an existing conversation")
	return cmd
}

// renderer prints the growth of the streamed text.
type renderer struct {
	out        io.Writer
	generation uint64
	printed    int
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out}
}

func (r *renderer) render(snap models.Snapshot) {
	if snap.Generation == 0 {
		return
	}
	if snap.Generation != r.generation {
		r.generation = snap.Generation
		r.printed = 0
	}
	if len(snap.Text) > r.printed {
		fmt.Fprint(r.out, snap.Text[r.printed:])
		r.printed = len(snap.Text)
	}
}

// finish ends the reply line and reports how the stream ended.
func (r *renderer) finish(errOut io.Writer, final models.Snapshot, learned string) error {
	if r.printed > 0 {
		fmt.Fprintln(r.out)
	}
	if learned != "" {
		fmt.Fprintln(errOut, color.New(color.FgHiBlack).Sprintf("conversation: %s", learned))
	}

	switch final.Status {
	case models.StreamStatusError:
		return fmt.Errorf("%s", final.Error)
	case models.StreamStatusIdle:
		color.New(color.FgYellow).Fprintln(errOut, "[stopped]")
	}
	return nil
}
