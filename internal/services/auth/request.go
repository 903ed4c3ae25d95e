package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
)

// Request describes one outbound API call.
type Request struct {
	Method string
	// Path is relative to the API prefix, e.g. "/rooms".
	Path string
	// Body is JSON-encoded when non-nil.
	Body   any
	Header http.Header
}

// AuthorizedRequest issues req with the current bearer token and decodes a
// 2xx JSON response into out (nil discards the body; 204 is an empty success).
//
// A 401 received while a token was attached triggers one shared refresh. On
// success the request is retried exactly once with the same method and body;
// on failure the shared refresh clears the session and a SessionExpired error
// is returned.
func (m *Manager) AuthorizedRequest(ctx context.Context, req *Request, out any) error {
	if req == nil {
		return domainerrors.NewValidationError("request is required", "")
	}

	payload, err := encodeBody(req.Body)
	if err != nil {
		return err
	}

	token := m.AccessToken()
	resp, err := m.do(ctx, req.Method, req.Path, req.Header, payload, token)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusUnauthorized || token == "" {
		return decodeResponse(resp, out)
	}
	discard(resp)

	ok, err := m.refreshAfter(ctx, token)
	if err != nil {
		return err
	}
	retryToken := m.AccessToken()
	if !ok || retryToken == "" {
		// The failed flight has already cleared the session.
		m.logger.Debug().Str("path", req.Path).Msg("request rejected, session expired")
		return domainerrors.NewSessionExpiredError()
	}

	resp, err = m.do(ctx, req.Method, req.Path, req.Header, payload, retryToken)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

// do sends a single attempt. token may be empty.
func (m *Manager) do(ctx context.Context, method, path string, header http.Header, payload []byte, token string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, body)
	if err != nil {
		return nil, domainerrors.NewValidationError("invalid request", err.Error())
	}

	for k, values := range header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, domainerrors.NewNetworkError(method+" "+path, err)
	}
	return resp, nil
}

// postJSON is the unretried call used by login, refresh and logout.
func (m *Manager) postJSON(ctx context.Context, path, token string, in, out any) error {
	payload, err := encodeBody(in)
	if err != nil {
		return err
	}
	resp, err := m.do(ctx, http.MethodPost, path, nil, payload, token)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, domainerrors.NewValidationError("failed to encode request body", err.Error())
	}
	return payload, nil
}

// decodeResponse consumes and closes resp.
func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.NewNetworkError("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainerrors.NewAPIError(resp.StatusCode, string(data))
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return domainerrors.NewDecodeError(errors.New("empty response body"))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domainerrors.NewDecodeError(fmt.Errorf("decode %T: %w", out, err))
	}
	return nil
}

// discard drains and closes a response that will not be used so the
// connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}
