package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/erp-client/internal/api/dto"
	"github.com/unifiedui/erp-client/internal/api/handlers"
	"github.com/unifiedui/erp-client/internal/api/middleware"
	"github.com/unifiedui/erp-client/internal/core/vault"
	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/mocks"
	"github.com/unifiedui/erp-client/internal/testutils"
)

func setupSessionRouter(session handlers.SessionService, v vault.Vault) http.Handler {
	handler := handlers.NewSessionHandler(session, v)
	router := testutils.SetupTestRouter()
	router.GET("/session", handler.Get)
	router.POST("/session/login", handler.Login)
	router.POST("/session/logout", handler.Logout)
	return router
}

func TestSessionHandler_Login_Success(t *testing.T) {
	session := &mocks.MockSessionService{}
	user := testutils.NewTestUser()
	session.On("Login", mock.Anything, testutils.TestEmail, "secret").Return(user, nil)

	router := setupSessionRouter(session, nil)
	w := testutils.PerformRequest(router, "POST", "/session/login", dto.LoginRequest{
		Email:    testutils.TestEmail,
		Password: "secret",
	}, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
	var response dto.SessionResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.True(t, response.Authenticated)
	assert.Equal(t, user.Email, response.User.Email)
	session.AssertExpectations(t)
}

func TestSessionHandler_Login_FallsBackToVault(t *testing.T) {
	session := &mocks.MockSessionService{}
	v := &mocks.MockVault{}
	v.On("GetSecret", mock.Anything, vault.SecretLoginEmail).Return(testutils.TestEmail, nil)
	v.On("GetSecret", mock.Anything, vault.SecretLoginPassword).Return("from-vault", nil)
	session.On("Login", mock.Anything, testutils.TestEmail, "from-vault").Return(testutils.NewTestUser(), nil)

	router := setupSessionRouter(session, v)
	w := testutils.PerformRequest(router, "POST", "/session/login", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
	session.AssertExpectations(t)
	v.AssertExpectations(t)
}

func TestSessionHandler_Login_MissingCredentials(t *testing.T) {
	session := &mocks.MockSessionService{}

	router := setupSessionRouter(session, nil)
	w := testutils.PerformRequest(router, "POST", "/session/login", dto.LoginRequest{Email: testutils.TestEmail}, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
	var response middleware.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeValidation, response.Code)
	session.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_Login_Rejected(t *testing.T) {
	session := &mocks.MockSessionService{}
	session.On("Login", mock.Anything, testutils.TestEmail, "wrong").
		Return(nil, domainerrors.NewAPIError(http.StatusUnauthorized, `{"detail":"invalid credentials"}`))

	router := setupSessionRouter(session, nil)
	w := testutils.PerformRequest(router, "POST", "/session/login", dto.LoginRequest{
		Email:    testutils.TestEmail,
		Password: "wrong",
	}, nil)

	testutils.AssertStatusCode(t, http.StatusUnauthorized, w)
	var response middleware.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeAPI, response.Code)
	assert.Contains(t, response.Details, "invalid credentials")
}

func TestSessionHandler_Logout(t *testing.T) {
	session := &mocks.MockSessionService{}
	session.On("Logout", mock.Anything).Return(nil)

	router := setupSessionRouter(session, nil)
	w := testutils.PerformRequest(router, "POST", "/session/logout", nil, nil)

	testutils.AssertStatusCode(t, http.StatusNoContent, w)
	session.AssertExpectations(t)
}

func TestSessionHandler_Get(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		session := &mocks.MockSessionService{}
		session.On("AccessToken").Return("access-a")
		session.On("CurrentUser").Return(testutils.NewTestUser())

		w := testutils.PerformRequest(setupSessionRouter(session, nil), "GET", "/session", nil, nil)

		testutils.AssertStatusCode(t, http.StatusOK, w)
		var response dto.SessionResponse
		testutils.ParseJSONResponse(t, w, &response)
		assert.True(t, response.Authenticated)
		assert.Equal(t, testutils.TestEmail, response.User.Email)
	})

	t.Run("anonymous", func(t *testing.T) {
		session := &mocks.MockSessionService{}
		session.On("AccessToken").Return("")
		session.On("CurrentUser").Return(nil)

		w := testutils.PerformRequest(setupSessionRouter(session, nil), "GET", "/session", nil, nil)

		testutils.AssertStatusCode(t, http.StatusOK, w)
		assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
	})
}
