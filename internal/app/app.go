// Package app wires the client components from configuration. It is shared
// by the gateway server and the erpctl CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/unifiedui/erp-client/internal/config"
	"github.com/unifiedui/erp-client/internal/core/docdb"
	"github.com/unifiedui/erp-client/internal/core/tokenstore"
	"github.com/unifiedui/erp-client/internal/core/vault"
	"github.com/unifiedui/erp-client/internal/infrastructure/docdb/mongodb"
	"github.com/unifiedui/erp-client/internal/infrastructure/tokenstore/memory"
	redisstore "github.com/unifiedui/erp-client/internal/infrastructure/tokenstore/redis"
	sqlitestore "github.com/unifiedui/erp-client/internal/infrastructure/tokenstore/sqlite"
	dotenvvault "github.com/unifiedui/erp-client/internal/infrastructure/vault/dotenv"
	"github.com/unifiedui/erp-client/internal/pkg/encryption"
	"github.com/unifiedui/erp-client/internal/services/auth"
	"github.com/unifiedui/erp-client/internal/services/chat"
	"github.com/unifiedui/erp-client/internal/services/conversations"
	"github.com/unifiedui/erp-client/internal/services/credentials"
)

// App holds the wired components.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	Vault      vault.Vault
	TokenStore tokenstore.Store
	// DocDB is nil when the transcript archive is disabled.
	DocDB docdb.Client

	Session       *auth.Manager
	Chat          *chat.Controller
	Conversations *conversations.Client
}

// Options overrides parts of the wiring, mainly for tests.
type Options struct {
	HTTPClient *http.Client
	// TokenStore replaces the store selected by configuration.
	TokenStore tokenstore.Store
}

// New builds every component. On error, anything already opened is closed.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts *Options) (_ *App, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	a := &App{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close(context.WithoutCancel(ctx))
		}
	}()

	if a.Vault, err = createVault(cfg.Vault); err != nil {
		return nil, fmt.Errorf("failed to initialize vault: %w", err)
	}

	a.TokenStore = opts.TokenStore
	if a.TokenStore == nil {
		if a.TokenStore, err = createTokenStore(cfg.TokenStore); err != nil {
			return nil, fmt.Errorf("failed to initialize token store: %w", err)
		}
	}

	if a.DocDB, err = createDocDBClient(ctx, cfg.DocDB); err != nil {
		return nil, fmt.Errorf("failed to initialize document db client: %w", err)
	}
	if a.DocDB != nil {
		if err := a.DocDB.EnsureIndexes(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to ensure transcript indexes")
		}
	}

	encryptor, err := createEncryptor(ctx, cfg.Vault, a.Vault, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize encryptor: %w", err)
	}

	creds, err := credentials.NewService(&credentials.Config{
		TokenStore: a.TokenStore,
		Encryptor:  encryptor,
		KeyPrefix:  cfg.TokenStore.KeyPrefix,
		Logger:     &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	a.Session, err = auth.NewManager(&auth.Config{
		BaseURL:        cfg.API.BaseURL,
		Credentials:    creds,
		HTTPClient:     opts.HTTPClient,
		RefreshTimeout: cfg.API.RefreshTimeout,
		Logger:         &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}

	chatCfg := &chat.Config{
		Opener:   a.Session,
		Identity: a.Session,
		Logger:   &logger,
	}
	if a.DocDB != nil {
		chatCfg.Recorder = a.DocDB.Transcripts()
	}
	if a.Chat, err = chat.NewController(chatCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize chat controller: %w", err)
	}

	a.Conversations = conversations.NewClient(a.Session)
	return a, nil
}

// Close aborts any chat stream and releases every opened resource.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Chat != nil {
		a.Chat.Abort()
	}
	if a.DocDB != nil {
		errs = append(errs, a.DocDB.Close(ctx))
	}
	if a.TokenStore != nil {
		errs = append(errs, a.TokenStore.Close())
	}
	if a.Vault != nil {
		errs = append(errs, a.Vault.Close())
	}
	return errors.Join(errs...)
}

// createVault creates a vault based on the configuration.
func createVault(cfg config.VaultConfig) (vault.Vault, error) {
	switch vault.Type(cfg.Type) {
	case vault.TypeDotEnv:
		v, err := dotenvvault.NewVault(".env")
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported vault type: %s", cfg.Type)
	}
}

// createTokenStore creates the durable refresh-token slot.
func createTokenStore(cfg config.TokenStoreConfig) (tokenstore.Store, error) {
	switch tokenstore.Type(cfg.Type) {
	case tokenstore.TypeRedis:
		store, err := redisstore.NewStore(redisstore.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case tokenstore.TypeSQLite:
		store, err := sqlitestore.NewStore(sqlitestore.Config{Path: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		return store, nil
	case tokenstore.TypeMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported token store type: %s", cfg.Type)
	}
}

// createDocDBClient creates the transcript archive, or nil when disabled.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeNone, "":
		return nil, nil
	case docdb.TypeMongoDB:
		client, err := mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// createEncryptor picks the key from configuration, then the vault.
func createEncryptor(ctx context.Context, cfg config.VaultConfig, v vault.Vault, logger zerolog.Logger) (encryption.Encryptor, error) {
	key := cfg.EncryptionKey
	if key == "" {
		secret, err := vault.OptionalSecret(ctx, v, vault.SecretEncryptionKey)
		if err != nil {
			return nil, err
		}
		key = secret
	}

	if key == "" {
		logger.Warn().Msg("SECRETS_ENCRYPTION_KEY not set, refresh token is stored unencrypted")
	}
	return encryption.New(key)
}
