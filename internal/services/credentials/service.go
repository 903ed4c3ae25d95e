// Package credentials persists the refresh token through a token store.
package credentials

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/erp-client/internal/core/tokenstore"
	"github.com/unifiedui/erp-client/internal/pkg/encryption"
)

// RefreshTokenKey is the fixed slot holding the refresh token.
const RefreshTokenKey = "refresh_token"

// Store reads and writes the persisted refresh token.
type Store interface {
	// RefreshToken returns the persisted token, or "" when none is stored.
	RefreshToken(ctx context.Context) (string, error)

	// SaveRefreshToken replaces the persisted token.
	SaveRefreshToken(ctx context.Context, token string) error

	// ClearRefreshToken removes the persisted token. Clearing an empty slot is not an error.
	ClearRefreshToken(ctx context.Context) error
}

// Config holds the configuration for the credential service.
type Config struct {
	TokenStore tokenstore.Store
	Encryptor  encryption.Encryptor
	// KeyPrefix namespaces the slot in shared stores such as redis.
	KeyPrefix string
	Logger    *zerolog.Logger
}

type service struct {
	store     tokenstore.Store
	encryptor encryption.Encryptor
	key       string
	logger    zerolog.Logger
}

// NewService creates a new credential service.
func NewService(cfg *Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.TokenStore == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if cfg.Encryptor == nil {
		return nil, fmt.Errorf("encryptor is required")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		store:     cfg.TokenStore,
		encryptor: cfg.Encryptor,
		key:       cfg.KeyPrefix + RefreshTokenKey,
		logger:    logger.With().Str("component", "credentials").Logger(),
	}, nil
}

// RefreshToken loads and decrypts the persisted token.
// A value that no longer decrypts (key rotated, corrupted) is deleted and treated as absent.
func (s *service) RefreshToken(ctx context.Context) (string, error) {
	sealed, err := s.store.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	if len(sealed) == 0 {
		return "", nil
	}

	token, err := s.encryptor.Open(string(sealed))
	if err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable refresh token")
		_, _ = s.store.Delete(ctx, s.key)
		return "", nil
	}

	return token, nil
}

// SaveRefreshToken encrypts and persists token.
func (s *service) SaveRefreshToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("refresh token is required")
	}

	sealed, err := s.encryptor.Seal(token)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	if err := s.store.Set(ctx, s.key, []byte(sealed)); err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return nil
}

// ClearRefreshToken removes the persisted token.
func (s *service) ClearRefreshToken(ctx context.Context) error {
	if _, err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
