package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const tokenFileName = ".goph_token"

// TokenStore persists the bearer token as plain text in a single file.
// Writes are whole-file overwrites; a crash mid-write shows up on the next
// load as a token the server rejects, not as a detectable corruption.
type TokenStore struct {
	Path string
}

// DefaultTokenStore places the token file in the user's home directory.
func DefaultTokenStore() (*TokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &TokenStore{Path: filepath.Join(home, tokenFileName)}, nil
}

// Save overwrites the stored token.
func (s *TokenStore) Save(token string) error {
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load returns the stored token, trimmed of surrounding whitespace.
func (s *TokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Delete removes the token file. A missing file is not an error.
func (s *TokenStore) Delete() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
