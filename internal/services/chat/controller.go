// Package chat implements the stream session controller for the assistant
// chat endpoint. A controller owns at most one live stream; every Send
// supersedes the previous one.
package chat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

const (
	// ChatPath is the streaming chat endpoint relative to the API prefix.
	ChatPath = "/agent/chat"

	// ConversationHeader carries the server-assigned conversation id.
	ConversationHeader = "X-Conversation-ID"

	recordTimeout = 5 * time.Second
)

// StreamOpener opens the chat event stream. *auth.Manager implements it.
type StreamOpener interface {
	OpenStream(ctx context.Context, path string, body any) (*http.Response, error)
}

// Recorder archives finished streams.
type Recorder interface {
	Record(ctx context.Context, transcript *models.Transcript) error
}

// Identity supplies the current user for transcripts.
type Identity interface {
	CurrentUser() *models.User
}

// Config holds the configuration for a controller.
type Config struct {
	Opener StreamOpener
	// Recorder is optional.
	Recorder Recorder
	// Identity is optional.
	Identity Identity
	Logger   *zerolog.Logger
}

// session is one chat request. Only the controller mutates it, under mu.
type session struct {
	generation     uint64
	text           strings.Builder
	status         models.StreamStatus
	err            string
	conversationID string
	prompt         string
	startedAt      time.Time
}

// Controller drives chat streams and exposes their state.
type Controller struct {
	opener   StreamOpener
	recorder Recorder
	identity Identity
	logger   zerolog.Logger

	mu         sync.Mutex
	generation uint64
	current    *session
	cancel     context.CancelFunc

	subMu   sync.Mutex
	subs    map[uint64]chan models.Snapshot
	nextSub uint64
}

// NewController creates a controller in the idle state.
func NewController(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Opener == nil {
		return nil, fmt.Errorf("stream opener is required")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Controller{
		opener:   cfg.Opener,
		recorder: cfg.Recorder,
		identity: cfg.Identity,
		logger:   logger.With().Str("component", "chat").Logger(),
		subs:     make(map[uint64]chan models.Snapshot),
	}, nil
}

// Send streams the assistant's reply to message and blocks until the stream
// is terminal. Any earlier stream is superseded before the request is made.
// It returns the server-assigned conversation id when conversationID is
// empty, and "" otherwise. Failures are reported through Snapshot().Error,
// never returned.
func (c *Controller) Send(ctx context.Context, conversationID, message string) string {
	streamCtx, cancel := context.WithCancel(ctx)
	sess, _ := c.begin(cancel, conversationID, message)
	learned := c.run(streamCtx, cancel, sess, conversationID, message)

	if conversationID != "" {
		return ""
	}
	return learned
}

// Start supersedes any earlier stream and installs the new session before it
// returns, then streams in the background. The returned snapshot is the new
// session's first state; later states are seen through Snapshot or Subscribe.
func (c *Controller) Start(ctx context.Context, conversationID, message string) models.Snapshot {
	streamCtx, cancel := context.WithCancel(ctx)
	sess, snap := c.begin(cancel, conversationID, message)
	go c.run(streamCtx, cancel, sess, conversationID, message)
	return snap
}

// run streams sess to a terminal state and archives it.
func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, sess *session, conversationID, message string) string {
	defer cancel()

	learned := c.stream(ctx, sess.generation, conversationID, message)
	c.archive(sess)
	return learned
}

// begin supersedes the current stream and installs a fresh session. The
// snapshot is taken under the same lock, so it always shows the new session.
func (c *Controller) begin(cancel context.CancelFunc, conversationID, message string) (*session, models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeLocked()

	c.generation++
	sess := &session{
		generation:     c.generation,
		status:         models.StreamStatusStreaming,
		conversationID: conversationID,
		prompt:         message,
		startedAt:      time.Now().UTC(),
	}
	c.current = sess
	c.cancel = cancel

	c.logger.Debug().Uint64("generation", sess.generation).Msg("stream started")
	c.publishLocked()
	return sess, c.snapshotLocked()
}

// Abort cancels the current stream if it is still running. The observable
// status returns to idle and the partial text is kept. Calling Abort with
// nothing running is a no-op.
func (c *Controller) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.status.Terminal() {
		return
	}
	c.supersedeLocked()
	c.publishLocked()
}

// supersedeLocked cancels the running transport and marks its session
// superseded so late events are discarded.
func (c *Controller) supersedeLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.current != nil && !c.current.status.Terminal() {
		c.current.status = models.StreamStatusSuperseded
		c.logger.Debug().Uint64("generation", c.current.generation).Msg("stream superseded")
	}
}

// update applies fn to the session for generation gen if it is still the
// live one. Returns false when the session was superseded or is terminal.
func (c *Controller) update(gen uint64, fn func(s *session)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.current
	if s == nil || s.generation != gen || s.status != models.StreamStatusStreaming {
		return false
	}
	fn(s)
	c.publishLocked()
	return true
}

func (c *Controller) appendToken(gen uint64, token string) bool {
	return c.update(gen, func(s *session) {
		s.text.WriteString(token)
	})
}

func (c *Controller) setConversation(gen uint64, id string) bool {
	return c.update(gen, func(s *session) {
		if id != "" {
			s.conversationID = id
		}
	})
}

func (c *Controller) complete(gen uint64) {
	c.update(gen, func(s *session) {
		s.status = models.StreamStatusDone
	})
}

func (c *Controller) fail(gen uint64, err *domainerrors.DomainError) {
	c.update(gen, func(s *session) {
		s.status = models.StreamStatusError
		s.err = describe(err)
		c.logger.Warn().Err(err).Uint64("generation", gen).Msg("stream failed")
	})
}

// cancelled ends a stream whose context was cancelled by the caller. Abort
// and supersession have already moved the session out of streaming, so this
// only matters for caller-side cancellation. The error field stays empty.
func (c *Controller) cancelled(gen uint64) {
	c.update(gen, func(s *session) {
		s.status = models.StreamStatusSuperseded
	})
}

// Snapshot returns the observable state of the current stream.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() models.Snapshot {
	if c.current == nil {
		return models.Snapshot{Status: models.StreamStatusIdle}
	}

	status := c.current.status
	if status == models.StreamStatusSuperseded {
		status = models.StreamStatusIdle
	}

	return models.Snapshot{
		Generation:     c.current.generation,
		Text:           c.current.text.String(),
		Status:         status,
		IsStreaming:    status == models.StreamStatusStreaming,
		Error:          c.current.err,
		ConversationID: c.current.conversationID,
	}
}

// Text returns the accumulated assistant text.
func (c *Controller) Text() string {
	return c.Snapshot().Text
}

// IsStreaming reports whether a stream is running.
func (c *Controller) IsStreaming() bool {
	return c.Snapshot().IsStreaming
}

// Err returns the error message of the last stream, or "".
func (c *Controller) Err() string {
	return c.Snapshot().Error
}

// archive hands a finished stream to the recorder. Superseded streams are not archived.
func (c *Controller) archive(sess *session) {
	if c.recorder == nil {
		return
	}

	c.mu.Lock()
	status := sess.status
	transcript := &models.Transcript{
		ID:             uuid.NewString(),
		ConversationID: sess.conversationID,
		Prompt:         sess.prompt,
		Response:       sess.text.String(),
		Status:         status,
		Error:          sess.err,
		StartedAt:      sess.startedAt,
		FinishedAt:     time.Now().UTC(),
	}
	c.mu.Unlock()

	if status != models.StreamStatusDone && status != models.StreamStatusError {
		return
	}
	if c.identity != nil {
		if user := c.identity.CurrentUser(); user != nil {
			transcript.UserEmail = user.Email
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := c.recorder.Record(ctx, transcript); err != nil {
		c.logger.Warn().Err(err).Str("transcript_id", transcript.ID).Msg("failed to archive transcript")
	}
}

func describe(err *domainerrors.DomainError) string {
	if err.Err != nil {
		return err.Message + ": " + err.Err.Error()
	}
	return err.Message
}
