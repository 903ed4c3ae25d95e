package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/unifiedui/erp-client/internal/domain/models"
)

// accessClaims mirrors the claims the backend signs into access tokens.
type accessClaims struct {
	UserID      string   `json:"user_id"`
	TenantID    string   `json:"tenant_id"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// userFromToken decodes the identity carried by an access token without
// verifying its signature. Returns nil for empty or unparseable tokens.
func userFromToken(token string) *models.User {
	if token == "" {
		return nil
	}

	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}

	user := &models.User{
		ID:          claims.UserID,
		TenantID:    claims.TenantID,
		Email:       claims.Email,
		Permissions: claims.Permissions,
	}
	if user.Permissions == nil {
		user.Permissions = []string{}
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Time
	}
	return user
}
