package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

const keySalt = "gatherly-token-store"

// Store persists a single opaque auth token on disk. The token is the sole
// authorization credential: setting a new one overwrites the old, and
// absence of a token means unauthenticated.
//
// When constructed with a passphrase the token is encrypted at rest with
// AES-GCM; otherwise it is written as-is with 0600 permissions. The token
// contents are never inspected.
type Store struct {
	mu   sync.Mutex
	path string

	// key is the AES key derived from the passphrase, nil for plaintext
	key []byte
}

// NewStore creates a plaintext token store backed by the given file
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewEncryptedStore creates a token store that encrypts the token at rest
// with a key derived from passphrase
func NewEncryptedStore(path, passphrase string) *Store {
	key := pbkdf2.Key([]byte(passphrase), []byte(keySalt), 100000, 32, sha256.New)
	return &Store{path: path, key: key}
}

// Get returns the stored token, or ok=false when none is stored
func (s *Store) Get() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return "", false
	}

	if s.key != nil {
		plain, err := s.decrypt(raw)
		if err != nil {
			return "", false
		}
		return plain, true
	}

	return raw, true
}

// Set stores the token, overwriting any previous one. The write is
// synchronous: a subsequent Get observes the new value.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	value := token
	if s.key != nil {
		enc, err := s.encrypt(token)
		if err != nil {
			return fmt.Errorf("failed to encrypt token: %w", err)
		}
		value = enc
	}

	if err := os.WriteFile(s.path, []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Remove deletes the stored token. Removing a token that does not exist
// is not an error.
func (s *Store) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// HasToken reports whether a token is currently stored
func (s *Store) HasToken() bool {
	_, ok := s.Get()
	return ok
}

// encrypt encrypts a value using AES-GCM
func (s *Store) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a value using AES-GCM
func (s *Store) decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
