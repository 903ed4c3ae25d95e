package routes_test

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/unifiedui/erp-client/internal/api/handlers"
	"github.com/unifiedui/erp-client/internal/api/middleware"
	"github.com/unifiedui/erp-client/internal/api/routes"
	"github.com/unifiedui/erp-client/internal/domain/models"
	"github.com/unifiedui/erp-client/internal/mocks"
	"github.com/unifiedui/erp-client/internal/testutils"
)

func setup(withTranscripts bool) (http.Handler, *mocks.MockChatService) {
	chat := &mocks.MockChatService{}
	cfg := &routes.Config{
		HealthHandler:  handlers.NewHealthHandler(&mocks.MockTokenStore{}, nil),
		SessionHandler: handlers.NewSessionHandler(&mocks.MockSessionService{}, nil),
		ChatHandler:    handlers.NewChatHandler(chat, 0),
		ProxyHandler:   handlers.NewProxyHandler(&mocks.MockDoer{}, 0),
	}
	if withTranscripts {
		cfg.TranscriptsHandler = handlers.NewTranscriptsHandler(&mocks.MockTranscriptsCollection{})
	}

	router := testutils.SetupTestRouter()
	routes.SetupWithMiddleware(router, cfg,
		middleware.NewLoggingMiddlewareWithLogger(zerolog.Nop()),
		middleware.NewErrorMiddleware(),
		middleware.DefaultCORSConfig(),
	)
	return router, chat
}

func TestSetup_ChatStateCarriesRequestID(t *testing.T) {
	router, chat := setup(false)
	chat.On("Snapshot").Return(models.Snapshot{Status: models.StreamStatusIdle})

	w := testutils.PerformRequest(router, "GET", "/chat/state", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestSetup_UnknownRoute(t *testing.T) {
	router, _ := setup(false)

	w := testutils.PerformRequest(router, "GET", "/nope", nil, nil)

	testutils.AssertStatusCode(t, http.StatusNotFound, w)
	var response middleware.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "NOT_FOUND", response.Code)
}

func TestSetup_TranscriptsOnlyWhenArchiveEnabled(t *testing.T) {
	router, _ := setup(false)
	w := testutils.PerformRequest(router, "GET", "/transcripts?order=bad", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	router, _ = setup(true)
	w = testutils.PerformRequest(router, "GET", "/transcripts?order=bad", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetup_WrongMethod(t *testing.T) {
	router, chat := setup(false)

	w := testutils.PerformRequest(router, "DELETE", "/chat/state", nil, nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	chat.AssertNotCalled(t, "Snapshot")
}
