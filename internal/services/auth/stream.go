package auth

import (
	"context"
	"net/http"
)

// OpenStream POSTs body to path asking for an event stream and returns the
// response whatever its status. The bearer is attached when present; a 401
// does not trigger a refresh. The caller owns resp.Body.
func (m *Manager) OpenStream(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Accept", "text/event-stream")
	header.Set("Cache-Control", "no-cache")

	return m.do(ctx, http.MethodPost, path, header, payload, m.AccessToken())
}
