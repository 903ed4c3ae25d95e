// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	API        APIConfig
	TokenStore TokenStoreConfig
	Vault      VaultConfig
	DocDB      DocDBConfig
	Server     ServerConfig
	Log        LogConfig
}

// APIConfig holds the ERP backend configuration.
type APIConfig struct {
	// BaseURL is the backend origin; "/api/v1" is appended to every path.
	BaseURL        string
	RefreshTimeout time.Duration
	// RequestTimeout bounds plain authorized calls. Chat streams are unbounded.
	RequestTimeout time.Duration
}

// TokenStoreConfig holds the persisted refresh token slot configuration.
type TokenStoreConfig struct {
	Type       string
	KeyPrefix  string
	SQLitePath string
	Redis      RedisConfig
}

// RedisConfig holds redis connection configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// VaultConfig holds vault configuration.
type VaultConfig struct {
	Type          string
	EncryptionKey string
}

// DocDBConfig holds transcript archive configuration.
type DocDBConfig struct {
	Type     string
	URI      string
	Database string
}

// ServerConfig holds gateway server configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
			RefreshTimeout: time.Duration(getEnvAsInt("AUTH_REFRESH_TIMEOUT_SECONDS", 10)) * time.Second,
			RequestTimeout: time.Duration(getEnvAsInt("API_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		TokenStore: TokenStoreConfig{
			Type:       getEnv("TOKEN_STORE_TYPE", "sqlite"),
			KeyPrefix:  getEnv("TOKEN_STORE_KEY_PREFIX", "erp-client:"),
			SQLitePath: getEnv("TOKEN_STORE_SQLITE_PATH", defaultSQLitePath()),
			Redis: RedisConfig{
				Host:     getEnv("REDIS_HOST", "localhost"),
				Port:     getEnv("REDIS_PORT", "6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       getEnvAsInt("REDIS_DB", 0),
			},
		},
		Vault: VaultConfig{
			Type:          getEnv("VAULT_TYPE", "dotenv"),
			EncryptionKey: getEnv("SECRETS_ENCRYPTION_KEY", ""),
		},
		DocDB: DocDBConfig{
			Type:     getEnv("DOCDB_TYPE", "none"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "erp_client"),
		},
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "127.0.0.1"),
			Port:    getEnvAsInt("SERVER_PORT", 8090),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.API.RefreshTimeout <= 0 {
		return fmt.Errorf("AUTH_REFRESH_TIMEOUT_SECONDS must be positive")
	}
	switch c.TokenStore.Type {
	case "redis", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported token store type: %s", c.TokenStore.Type)
	}
	return nil
}

// defaultSQLitePath returns the per-user location of the token database.
func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "erp-client.db"
	}
	return filepath.Join(dir, "erp-client", "session.db")
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
