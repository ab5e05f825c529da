// Package store provides the persistent token stores. The bearer token is the
// sole piece of durable client-side state; it survives process restarts and is
// created on login, removed on logout, storage clear, or authentication expiry.
package store

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/opendaan/donation-client/internal/core/domain"
)

const tokenFileName = "token.bin"

// FileTokenStore keeps the token sealed at rest in a single file.
//
// File layout: salt (16 bytes) | nonce (12 bytes) | ciphertext. The sealing
// key is derived from the configured secret with scrypt; a fresh salt and
// nonce are drawn on every write.
type FileTokenStore struct {
	dir    string
	secret []byte
}

// NewFileTokenStore creates a store rooted at dir. An empty dir defaults to
// $HOME/.donation-client.
func NewFileTokenStore(dir, secret string) (*FileTokenStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("token store: resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".donation-client")
	}
	if secret == "" {
		return nil, errors.New("token store: empty secret")
	}
	return &FileTokenStore{dir: dir, secret: []byte(secret)}, nil
}

func (s *FileTokenStore) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

// Get returns the stored token, or domain.ErrTokenNotFound when absent.
func (s *FileTokenStore) Get(_ context.Context) (string, error) {
	blob, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("token store: read: %w", err)
	}
	token, err := s.unseal(blob)
	if err != nil {
		return "", fmt.Errorf("token store: unseal: %w", err)
	}
	return token, nil
}

// Set writes the token, replacing any previous one.
func (s *FileTokenStore) Set(_ context.Context, token string) error {
	blob, err := s.seal(token)
	if err != nil {
		return fmt.Errorf("token store: seal: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("token store: mkdir: %w", err)
	}
	if err := os.WriteFile(s.path(), blob, 0o600); err != nil {
		return fmt.Errorf("token store: write: %w", err)
	}
	return nil
}

// Remove deletes the token. Removing an absent token is not an error.
func (s *FileTokenStore) Remove(_ context.Context) error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("token store: remove: %w", err)
	}
	return nil
}

// Clear wipes the whole state directory.
func (s *FileTokenStore) Clear(_ context.Context) error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("token store: clear: %w", err)
	}
	return nil
}

func (s *FileTokenStore) seal(token string) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	blob := append(salt, nonce...)
	return aead.Seal(blob, nonce, []byte(token), nil), nil
}

func (s *FileTokenStore) unseal(blob []byte) (string, error) {
	if len(blob) < 16+chacha20poly1305.NonceSize {
		return "", errors.New("truncated token file")
	}
	salt, rest := blob[:16], blob[16:]
	aead, err := s.aead(salt)
	if err != nil {
		return "", err
	}
	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func (s *FileTokenStore) aead(salt []byte) (aeadCipher, error) {
	key, err := scrypt.Key(s.secret, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}

type aeadCipher interface {
	NonceSize() int
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}
