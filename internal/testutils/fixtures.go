package testutils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unifiedui/erp-client/internal/domain/models"
)

// Test constants
const (
	TestEmail          = "ada@example.com"
	TestUserID         = "user-test-def"
	TestTenantID       = "tenant-test-123"
	TestConversationID = "conv-test-456"
	TestTranscriptID   = "transcript-test-789"
)

// NewTestAccessToken returns an HS256 JWT carrying the
// claims the client decodes into a models.User.
func NewTestAccessToken(email string, permissions ...string) string {
	claims := jwt.MapClaims{
		"user_id":     TestUserID,
		"tenant_id":   TestTenantID,
		"email":       email,
		"permissions": permissions,
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	return token
}

// NewTestUser creates a user matching NewTestAccessToken.
func NewTestUser() *models.User {
	return &models.User{
		ID:          TestUserID,
		TenantID:    TestTenantID,
		Email:       TestEmail,
		Permissions: []string{"orders:read"},
	}
}

// NewTestTranscript creates a finished transcript.
func NewTestTranscript() *models.Transcript {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &models.Transcript{
		ID:             TestTranscriptID,
		ConversationID: TestConversationID,
		UserEmail:      TestEmail,
		Prompt:         "show open orders",
		Response:       "You have 3 open orders.",
		Status:         models.StreamStatusDone,
		StartedAt:      started,
		FinishedAt:     started.Add(2 * time.Second),
	}
}
