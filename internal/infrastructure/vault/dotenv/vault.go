// Package dotenv provides an environment-backed vault.
package dotenv

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/unifiedui/erp-client/internal/core/vault"
)

// Vault implements vault.Vault using environment variables, an optional
// .env file, and in-memory overrides.
type Vault struct {
	mu       sync.RWMutex
	file     map[string]string
	override map[string]string
	lookup   func(string) (string, bool)
}

// NewVault creates a vault. When files are given they are parsed with
// godotenv without touching the process environment; missing files are skipped.
func NewVault(files ...string) (*Vault, error) {
	v := &Vault{
		file:     make(map[string]string),
		override: make(map[string]string),
		lookup:   os.LookupEnv,
	}

	for _, path := range files {
		values, err := godotenv.Read(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, val := range values {
			v.file[k] = val
		}
	}

	return v, nil
}

// GetSecret resolves name from overrides, then the environment, then the files.
func (v *Vault) GetSecret(_ context.Context, name string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if value, ok := v.override[name]; ok {
		return value, nil
	}
	if value, ok := v.lookup(name); ok && value != "" {
		return value, nil
	}
	if value, ok := v.file[name]; ok && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s", vault.ErrSecretNotFound, name)
}

// SetSecret stores an in-memory override.
func (v *Vault) SetSecret(_ context.Context, name string, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.override[name] = value
	return nil
}

// DeleteSecret removes an in-memory override.
func (v *Vault) DeleteSecret(_ context.Context, name string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.override[name]; !ok {
		return false, nil
	}
	delete(v.override, name)
	return true, nil
}

// Ping always succeeds.
func (v *Vault) Ping(context.Context) error {
	return nil
}

// Close is a no-op.
func (v *Vault) Close() error {
	return nil
}
