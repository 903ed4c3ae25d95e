// Package models contains domain models for the ERP console client.
package models

import "time"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPair is the response of the login and refresh endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Valid reports whether both tokens are present.
func (p *TokenPair) Valid() bool {
	return p != nil && p.AccessToken != "" && p.RefreshToken != ""
}

// User is the identity decoded from the access token claims.
type User struct {
	ID          string    `json:"id,omitempty"`
	TenantID    string    `json:"tenantId,omitempty"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// HasPermission reports whether the user holds the given permission.
func (u *User) HasPermission(permission string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Tokens is a consistent snapshot of the session credentials.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}
