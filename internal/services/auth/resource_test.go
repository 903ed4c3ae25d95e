package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/domain/models"
	"github.com/unifiedui/erp-client/internal/services/auth"
)

type room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func TestResourceHelpers(t *testing.T) {
	var lastMethod, lastBody string
	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastMethod, lastBody = r.Method, string(body)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/rooms":
			writeJSON(w, http.StatusOK, models.ListResponse[room]{
				Items: []room{{ID: "r1", Name: "A-101", Capacity: 30}},
				Total: 1,
			})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet:
			http.Error(w, "not found", http.StatusNotFound)
		default:
			var in room
			_ = json.Unmarshal(body, &in)
			in.ID = "r2"
			writeJSON(w, http.StatusOK, in)
		}
	}))

	m := newManager(t, srv.URL, newCredentials(t))
	m.SetAccessToken("tok")
	ctx := context.Background()

	list, err := auth.Get[models.ListResponse[room]](ctx, m, "/rooms")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "A-101", list.Items[0].Name)

	created, err := auth.Post[room](ctx, m, "/rooms", room{Name: "B-2", Capacity: 12})
	require.NoError(t, err)
	assert.Equal(t, "r2", created.ID)
	assert.Equal(t, http.MethodPost, lastMethod)
	assert.JSONEq(t, `{"id":"","name":"B-2","capacity":12}`, lastBody)

	updated, err := auth.Put[room](ctx, m, "/rooms/r2", room{Name: "B-3"})
	require.NoError(t, err)
	assert.Equal(t, "B-3", updated.Name)
	assert.Equal(t, http.MethodPut, lastMethod)

	patched, err := auth.Patch[room](ctx, m, "/rooms/r2", map[string]int{"capacity": 40})
	require.NoError(t, err)
	assert.Equal(t, 40, patched.Capacity)
	assert.Equal(t, http.MethodPatch, lastMethod)

	require.NoError(t, auth.Delete(ctx, m, "/rooms/r2"))
	assert.Equal(t, http.MethodDelete, lastMethod)

	_, err = auth.Get[room](ctx, m, "/rooms/missing")
	assert.Equal(t, http.StatusNotFound, domainerrors.StatusOf(err))
}

func TestOpenStream_DoesNotRefresh(t *testing.T) {
	backend := &rotatingBackend{access: "access-a", refresh: "refresh-a"}
	mux := http.NewServeMux()
	mux.Handle("/api/v1/auth/refresh", backend)
	mux.HandleFunc("/api/v1/agent/chat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	srv := newServer(t, mux)

	creds := newCredentials(t)
	require.NoError(t, creds.SaveRefreshToken(context.Background(), "refresh-a"))
	m := newManager(t, srv.URL, creds)
	m.SetAccessToken("stale")

	resp, err := m.OpenStream(context.Background(), "/agent/chat", models.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, backend.refreshCalls.Load())
	assert.Equal(t, "stale", m.AccessToken())
}
