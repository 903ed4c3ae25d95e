package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unifiedui/erp-client/internal/app"
	"github.com/unifiedui/erp-client/internal/services/auth"
)

func newRequestCmd(opts *options) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "request <method> <path>",
		Short: "Make an authorized API call",
		Long: `Make an authorized call to the backend API and print the JSON response.

The path is relative to /api/v1, for example:
  erpctl request GET /agent/conversations
  erpctl request PATCH /agent/conversations/42 --data '{"title":"Q3 close"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			path := args[1]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			req := &auth.Request{Method: method, Path: path}
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data must be valid JSON")
				}
				req.Body = json.RawMessage(data)
			}

			return opts.withApp(cmd, true, func(ctx context.Context, a *app.App) error {
				if timeout := a.Config.API.RequestTimeout; timeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, timeout)
					defer cancel()
				}

				var out json.RawMessage
				if err := a.Session.AuthorizedRequest(ctx, req, &out); err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	return cmd
}

// printJSON pretty-prints raw JSON, or reports an empty response.
func printJSON(cmd *cobra.Command, raw json.RawMessage) error {
	out := cmd.OutOrStdout()
	if len(raw) == 0 {
		fmt.Fprintln(out, http.StatusText(http.StatusNoContent))
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = out.Write(raw)
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(out)
	return err
}
