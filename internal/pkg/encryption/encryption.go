// Package encryption seals credentials before they reach a token store.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// aesPrefix tags values sealed with AES-256-GCM so a key change is detectable.
const aesPrefix = "v1:"

// ErrMalformed is returned when a sealed value cannot be parsed or authenticated.
var ErrMalformed = errors.New("malformed sealed value")

// Encryptor seals and opens secrets held at rest.
type Encryptor interface {
	// Seal encrypts plaintext into a printable string.
	Seal(plaintext string) (string, error)

	// Open reverses Seal.
	Open(sealed string) (string, error)
}

// AESEncryptor implements Encryptor using AES-256-GCM with a random nonce per value.
type AESEncryptor struct {
	gcm cipher.AEAD
}

// NewAESEncryptor creates an AES-256-GCM encryptor.
// The key is 32 bytes, given either base64-encoded or raw.
func NewAESEncryptor(key string) (*AESEncryptor, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(key)
	if err != nil || len(keyBytes) != 32 {
		keyBytes = []byte(key)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(keyBytes))
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESEncryptor{gcm: gcm}, nil
}

// Seal encrypts plaintext as "v1:" + base64(nonce || ciphertext).
func (e *AESEncryptor) Seal(plaintext string) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := e.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return aesPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (e *AESEncryptor) Open(sealed string) (string, error) {
	encoded, ok := strings.CutPrefix(sealed, aesPrefix)
	if !ok {
		return "", fmt.Errorf("%w: missing version prefix", ErrMalformed)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	nonceSize := e.gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: too short", ErrMalformed)
	}

	plaintext, err := e.gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return string(plaintext), nil
}

// GenerateKey returns a random base64-encoded 32-byte key.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// NoOpEncryptor stores secrets as plaintext. Used when no key is configured.
type NoOpEncryptor struct{}

// NewNoOpEncryptor creates a pass-through encryptor.
func NewNoOpEncryptor() *NoOpEncryptor {
	return &NoOpEncryptor{}
}

// Seal returns plaintext unchanged.
func (e *NoOpEncryptor) Seal(plaintext string) (string, error) {
	return plaintext, nil
}

// Open returns sealed unchanged, rejecting values sealed by AESEncryptor.
func (e *NoOpEncryptor) Open(sealed string) (string, error) {
	if strings.HasPrefix(sealed, aesPrefix) {
		return "", fmt.Errorf("%w: value is encrypted but no key is configured", ErrMalformed)
	}
	return sealed, nil
}

// New returns an AESEncryptor when key is set and a NoOpEncryptor otherwise.
func New(key string) (Encryptor, error) {
	if key == "" {
		return NewNoOpEncryptor(), nil
	}
	return NewAESEncryptor(key)
}
