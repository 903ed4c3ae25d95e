// Package vault defines secret lookup for credentials the client never persists in plain config.
package vault

import (
	"context"
	"errors"
	"fmt"
)

// Well-known secret names.
const (
	SecretEncryptionKey = "SECRETS_ENCRYPTION_KEY"
	SecretLoginEmail    = "ERP_LOGIN_EMAIL"
	SecretLoginPassword = "ERP_LOGIN_PASSWORD"
)

// ErrSecretNotFound is returned when a secret has no value.
var ErrSecretNotFound = errors.New("secret not found")

// Vault defines secret operations.
type Vault interface {
	// GetSecret returns the secret value or ErrSecretNotFound.
	GetSecret(ctx context.Context, name string) (string, error)

	// SetSecret stores a secret for the lifetime of the vault.
	SetSecret(ctx context.Context, name string, value string) error

	// DeleteSecret removes a stored secret. Returns false if nothing was stored.
	DeleteSecret(ctx context.Context, name string) (bool, error)

	// Ping checks if the vault is reachable.
	Ping(ctx context.Context) error

	// Close releases vault resources.
	Close() error
}

// LoginCredentials returns the non-interactive login email and password.
func LoginCredentials(ctx context.Context, v Vault) (string, string, error) {
	email, err := v.GetSecret(ctx, SecretLoginEmail)
	if err != nil {
		return "", "", fmt.Errorf("login email: %w", err)
	}
	password, err := v.GetSecret(ctx, SecretLoginPassword)
	if err != nil {
		return "", "", fmt.Errorf("login password: %w", err)
	}
	return email, password, nil
}

// OptionalSecret returns the secret or "" when it is not set.
func OptionalSecret(ctx context.Context, v Vault, name string) (string, error) {
	value, err := v.GetSecret(ctx, name)
	if errors.Is(err, ErrSecretNotFound) {
		return "", nil
	}
	return value, err
}
