package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sse "github.com/tmaxmax/go-sse"

	"github.com/unifiedui/erp-client/internal/domain/models"
	"github.com/unifiedui/erp-client/internal/infrastructure/tokenstore/memory"
	"github.com/unifiedui/erp-client/internal/mocks"
	"github.com/unifiedui/erp-client/internal/pkg/encryption"
	"github.com/unifiedui/erp-client/internal/services/auth"
	"github.com/unifiedui/erp-client/internal/services/chat"
	"github.com/unifiedui/erp-client/internal/services/credentials"
)

const waitFor = 2 * time.Second

// chatServer streams the given payloads as data events using go-sse.
func chatServer(t *testing.T, conversationID string, payloads ...string) (*httptest.Server, *models.ChatRequest) {
	t.Helper()
	var got models.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/agent/chat", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)

		if conversationID != "" {
			w.Header().Set(chat.ConversationHeader, conversationID)
		}
		sess, err := sse.Upgrade(w, r)
		if !assert.NoError(t, err) {
			return
		}
		for _, p := range payloads {
			msg := &sse.Message{}
			msg.AppendData(p)
			if err := sess.Send(msg); err != nil {
				return
			}
			_ = sess.Flush()
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newManager(t *testing.T, baseURL string) *auth.Manager {
	t.Helper()
	creds, err := credentials.NewService(&credentials.Config{
		TokenStore: memory.NewStore(),
		Encryptor:  encryption.NewNoOpEncryptor(),
	})
	require.NoError(t, err)
	m, err := auth.NewManager(&auth.Config{BaseURL: baseURL, Credentials: creds})
	require.NoError(t, err)
	m.SetAccessToken("tok")
	return m
}

func newController(t *testing.T, opener chat.StreamOpener) *chat.Controller {
	t.Helper()
	c, err := chat.NewController(&chat.Config{Opener: opener})
	require.NoError(t, err)
	return c
}

func jsonToken(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// pipeOpener hands each opened stream to the test so it can feed events by hand.
type pipeOpener struct {
	streams chan *pipeStream
}

type pipeStream struct {
	request models.ChatRequest
	ctx     context.Context
	w       *io.PipeWriter
}

func newPipeOpener() *pipeOpener {
	return &pipeOpener{streams: make(chan *pipeStream, 4)}
}

func (o *pipeOpener) OpenStream(ctx context.Context, _ string, body any) (*http.Response, error) {
	pr, pw := io.Pipe()
	o.streams <- &pipeStream{request: body.(models.ChatRequest), ctx: ctx, w: pw}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{chat.ConversationHeader: []string{"conv-pipe"}},
		Body:       pr,
	}, nil
}

func (o *pipeOpener) next(t *testing.T) *pipeStream {
	t.Helper()
	select {
	case s := <-o.streams:
		return s
	case <-time.After(waitFor):
		t.Fatal("stream was not opened")
		return nil
	}
}

func (s *pipeStream) send(payload string) error {
	_, err := fmt.Fprintf(s.w, "data: %s\n\n", payload)
	return err
}

func TestNewController_Validation(t *testing.T) {
	_, err := chat.NewController(nil)
	assert.Error(t, err)

	_, err = chat.NewController(&chat.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream opener is required")
}

func TestController_InitialState(t *testing.T) {
	c := newController(t, newPipeOpener())

	snap := c.Snapshot()
	assert.Equal(t, models.StreamStatusIdle, snap.Status)
	assert.False(t, c.IsStreaming())
	assert.Empty(t, c.Text())
	assert.Empty(t, c.Err())

	// Abort with nothing running is a no-op.
	c.Abort()
	assert.Equal(t, models.StreamStatusIdle, c.Snapshot().Status)
}

func TestSend_AccumulatesTokensInOrder(t *testing.T) {
	srv, got := chatServer(t, "conv-42", jsonToken("Hel"), jsonToken("lo"), jsonToken(", world"), chat.DoneSentinel)
	c := newController(t, newManager(t, srv.URL))

	conversationID := c.Send(context.Background(), "", "hi")

	assert.Equal(t, "conv-42", conversationID)
	assert.Equal(t, models.ChatRequest{ConversationID: "", Message: "hi"}, *got)

	snap := c.Snapshot()
	assert.Equal(t, "Hello, world", snap.Text)
	assert.Equal(t, models.StreamStatusDone, snap.Status)
	assert.False(t, snap.IsStreaming)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "conv-42", snap.ConversationID)
}

func TestSend_SuppliedConversationIDIsNotReturned(t *testing.T) {
	srv, got := chatServer(t, "conv-server", jsonToken("ok"), chat.DoneSentinel)
	c := newController(t, newManager(t, srv.URL))

	conversationID := c.Send(context.Background(), "conv-7", "")

	assert.Empty(t, conversationID)
	assert.Equal(t, "conv-7", got.ConversationID)
	assert.Empty(t, got.Message)
	assert.Equal(t, "ok", c.Text())
}

func TestSend_MalformedTokensAreAppendedVerbatim(t *testing.T) {
	srv, _ := chatServer(t, "", jsonToken("a"), "not-json", "42", `{"x":1}`, `"unterminated`, jsonToken("z"), chat.DoneSentinel)
	c := newController(t, newManager(t, srv.URL))

	c.Send(context.Background(), "", "hi")

	assert.Equal(t, `anot-json42{"x":1}"unterminatedz`, c.Text())
	assert.Equal(t, models.StreamStatusDone, c.Snapshot().Status)
	assert.Empty(t, c.Err())
}

func TestSend_CleanCloseWithoutSentinelIsDone(t *testing.T) {
	srv, _ := chatServer(t, "", jsonToken("partial answer"))
	c := newController(t, newManager(t, srv.URL))

	c.Send(context.Background(), "", "hi")

	snap := c.Snapshot()
	assert.Equal(t, "partial answer", snap.Text)
	assert.Equal(t, models.StreamStatusDone, snap.Status)
	assert.Empty(t, snap.Error)
}

func TestSend_NonSuccessOpenIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	c := newController(t, newManager(t, srv.URL))

	conversationID := c.Send(context.Background(), "", "hi")

	assert.Empty(t, conversationID)
	snap := c.Snapshot()
	assert.Equal(t, models.StreamStatusError, snap.Status)
	assert.Equal(t, "chat failed: status 401", snap.Error)
	assert.False(t, snap.IsStreaming)
	assert.Empty(t, snap.Text)
}

func TestSend_NetworkErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := newController(t, newManager(t, url))

	c.Send(context.Background(), "", "hi")

	snap := c.Snapshot()
	assert.Equal(t, models.StreamStatusError, snap.Status)
	assert.Contains(t, snap.Error, "failed to open chat stream")
}

func TestSend_InterruptedStreamKeepsPartialText(t *testing.T) {
	opener := newPipeOpener()
	c := newController(t, opener)

	done := make(chan struct{})
	go func() {
		c.Send(context.Background(), "", "hi")
		close(done)
	}()

	stream := opener.next(t)
	require.NoError(t, stream.send(jsonToken("part")))
	require.Eventually(t, func() bool { return c.Text() == "part" }, waitFor, 5*time.Millisecond)
	require.NoError(t, stream.w.CloseWithError(errors.New("reset")))

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Send did not return after the connection failed")
	}

	snap := c.Snapshot()
	assert.Equal(t, models.StreamStatusError, snap.Status)
	assert.Equal(t, "part", snap.Text)
	assert.Contains(t, snap.Error, "stream interrupted")
	assert.False(t, c.IsStreaming())
}

func TestStart_ReturnsNewSessionBeforeStreaming(t *testing.T) {
	opener := newPipeOpener()
	c := newController(t, opener)

	first := c.Start(context.Background(), "", "first")
	assert.EqualValues(t, 1, first.Generation)
	assert.Equal(t, models.StreamStatusStreaming, first.Status)

	stream := opener.next(t)
	require.NoError(t, stream.send(jsonToken("old text")))
	require.Eventually(t, func() bool { return c.Text() == "old text" }, waitFor, 5*time.Millisecond)

	second := c.Start(context.Background(), "conv-1", "second")
	assert.EqualValues(t, 2, second.Generation)
	assert.Equal(t, models.StreamStatusStreaming, second.Status)
	assert.True(t, second.IsStreaming)
	assert.Empty(t, second.Text)
	assert.Equal(t, "conv-1", second.ConversationID)

	// The first stream is cancelled and the second one runs in the background.
	select {
	case <-stream.ctx.Done():
	case <-time.After(waitFor):
		t.Fatal("first stream was not cancelled")
	}
	next := opener.next(t)
	assert.Equal(t, "second", next.request.Message)
	require.NoError(t, next.send(jsonToken("new")))
	require.NoError(t, next.send(chat.DoneSentinel))
	require.Eventually(t, func() bool {
		return c.Snapshot().Status == models.StreamStatusDone
	}, waitFor, 5*time.Millisecond)
	assert.Equal(t, "new", c.Text())
	require.NoError(t, next.w.Close())
}

func TestSend_NewSendSupersedesPrevious(t *testing.T) {
	opener := newPipeOpener()
	c := newController(t, opener)
	ctx := context.Background()

	firstDone := make(chan string, 1)
	go func() { firstDone <- c.Send(ctx, "", "first") }()

	first := opener.next(t)
	require.NoError(t, first.send(jsonToken("stale-")))
	require.Eventually(t, func() bool { return c.Text() == "stale-" }, waitFor, 5*time.Millisecond)

	secondDone := make(chan string, 1)
	go func() { secondDone <- c.Send(ctx, "", "second") }()
	second := opener.next(t)

	// The first transport is cancelled before the second request is issued.
	select {
	case <-first.ctx.Done():
	case <-time.After(waitFor):
		t.Fatal("first stream was not cancelled")
	}
	select {
	case <-firstDone:
	case <-time.After(waitFor):
		t.Fatal("first Send did not return")
	}

	// Late events from the first stream cannot be delivered.
	assert.Error(t, first.send(jsonToken("late")))

	assert.Equal(t, "second", second.request.Message)
	require.NoError(t, second.send(jsonToken("fresh")))
	require.NoError(t, second.send(chat.DoneSentinel))
	require.NoError(t, second.w.Close())

	select {
	case id := <-secondDone:
		assert.Equal(t, "conv-pipe", id)
	case <-time.After(waitFor):
		t.Fatal("second Send did not return")
	}

	snap := c.Snapshot()
	assert.Equal(t, "fresh", snap.Text)
	assert.Equal(t, models.StreamStatusDone, snap.Status)
	assert.Empty(t, snap.Error)
	assert.EqualValues(t, 2, snap.Generation)
}

func TestAbort_KeepsPartialText(t *testing.T) {
	opener := newPipeOpener()
	c := newController(t, opener)

	done := make(chan struct{})
	go func() {
		c.Send(context.Background(), "", "hi")
		close(done)
	}()

	stream := opener.next(t)
	require.NoError(t, stream.send(jsonToken("partial")))
	require.Eventually(t, func() bool { return c.Text() == "partial" }, waitFor, 5*time.Millisecond)
	assert.True(t, c.IsStreaming())

	c.Abort()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Send did not return after Abort")
	}

	snap := c.Snapshot()
	assert.Equal(t, models.StreamStatusIdle, snap.Status)
	assert.False(t, snap.IsStreaming)
	assert.Equal(t, "partial", snap.Text)
	assert.Empty(t, snap.Error)

	c.Abort()
	assert.Equal(t, snap, c.Snapshot())
}

func TestSend_CallerCancellationIsNotAnError(t *testing.T) {
	opener := newPipeOpener()
	c := newController(t, opener)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		c.Send(ctx, "", "hi")
		close(done)
	}()

	stream := opener.next(t)
	require.NoError(t, stream.send(jsonToken("x")))
	require.Eventually(t, func() bool { return c.Text() == "x" }, waitFor, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Send did not return after cancellation")
	}

	snap := c.Snapshot()
	assert.Equal(t, models.StreamStatusIdle, snap.Status)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "x", snap.Text)
}

func TestSubscribe_ReceivesLatestSnapshots(t *testing.T) {
	srv, _ := chatServer(t, "conv-1", jsonToken("a"), jsonToken("b"), chat.DoneSentinel)
	c := newController(t, newManager(t, srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	updates := c.Subscribe(ctx)

	initial := <-updates
	assert.Equal(t, models.StreamStatusIdle, initial.Status)

	var mu sync.Mutex
	var last models.Snapshot
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for snap := range updates {
			mu.Lock()
			last = snap
			mu.Unlock()
		}
	}()

	c.Send(context.Background(), "", "hi")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last.Status == models.StreamStatusDone
	}, waitFor, 5*time.Millisecond)

	cancel()
	<-collected

	assert.Equal(t, "ab", last.Text)
	assert.Equal(t, "conv-1", last.ConversationID)
}

func TestSend_RecordsFinishedStreams(t *testing.T) {
	srv, _ := chatServer(t, "conv-1", jsonToken("answer"), chat.DoneSentinel)

	recorder := &mocks.MockRecorder{}
	identity := &mocks.MockIdentity{}
	identity.On("CurrentUser").Return(&models.User{Email: "admin@erp.test"})
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(tr *models.Transcript) bool {
		return tr.Status == models.StreamStatusDone &&
			tr.Prompt == "question" &&
			tr.Response == "answer" &&
			tr.ConversationID == "conv-1" &&
			tr.UserEmail == "admin@erp.test" &&
			tr.ID != ""
	})).Return(nil).Once()

	c, err := chat.NewController(&chat.Config{
		Opener:   newManager(t, srv.URL),
		Recorder: recorder,
		Identity: identity,
	})
	require.NoError(t, err)

	c.Send(context.Background(), "", "question")

	recorder.AssertExpectations(t)
}

func TestAbort_IsNotRecorded(t *testing.T) {
	opener := newPipeOpener()
	recorder := &mocks.MockRecorder{}
	c, err := chat.NewController(&chat.Config{Opener: opener, Recorder: recorder})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		c.Send(context.Background(), "", "hi")
		close(done)
	}()
	opener.next(t)
	require.Eventually(t, c.IsStreaming, waitFor, 5*time.Millisecond)

	c.Abort()
	<-done

	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
