// Package session owns the client's authentication and vault state: the
// bearer token, the cached master password and the in-memory list of
// decrypted secrets. All mutation of that state goes through Manager
// methods; the interaction layer only reads it.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mkalinin/gopherkeeper/internal/client/api"
	"github.com/mkalinin/gopherkeeper/internal/client/crypto"
	"github.com/mkalinin/gopherkeeper/internal/models"
)

var (
	// ErrNotAuthenticated is returned by vault calls made without a token.
	ErrNotAuthenticated = errors.New("not authenticated: log in first")
	// ErrNotUnlocked is returned by calls that need the master password
	// while none is cached.
	ErrNotUnlocked = errors.New("vault locked: master password required")
)

// VaultAPI is the remote contract the session manager drives. It returns
// only opaque ciphertext records; plaintext never reaches it.
type VaultAPI interface {
	Register(ctx context.Context, login, password string) error
	Login(ctx context.Context, login, password string) (string, error)
	Secrets(ctx context.Context, token string) ([]models.StoredSecret, error)
	Upsert(ctx context.Context, token string, secrets []models.StoredSecret) error
	Delete(ctx context.Context, token, id string) error
}

// Manager moves through three states: anonymous (no token),
// authenticated-locked (token, no master password) and
// authenticated-unlocked (both). Login lands directly in unlocked because
// the login password doubles as the master password; auto-login lands in
// locked and stays there until Unlock.
type Manager struct {
	api    VaultAPI
	tokens *api.TokenStore
	log    *zap.SugaredLogger

	token          string
	masterPassword string
	currentUser    string

	secrets []models.DecryptedSecret
}

// NewManager creates a Manager in the anonymous state.
func NewManager(vaultAPI VaultAPI, tokens *api.TokenStore, log *zap.SugaredLogger) *Manager {
	return &Manager{api: vaultAPI, tokens: tokens, log: log}
}

// Register creates a remote account. Local session state is unchanged.
func (m *Manager) Register(ctx context.Context, login, password string) error {
	return m.api.Register(ctx, login, password)
}

// Login exchanges credentials for a token, persists the token, and caches
// the password as the master password. A failed persist is logged but does
// not fail the login; the session simply will not survive a restart.
func (m *Manager) Login(ctx context.Context, login, password string) error {
	token, err := m.api.Login(ctx, login, password)
	if err != nil {
		return err
	}
	m.token = token
	m.currentUser = login
	m.masterPassword = password
	if err := m.tokens.Save(token); err != nil {
		m.log.Warnw("persist token", "error", err)
	}
	return nil
}

// TryAutoLogin restores a previous session from the persisted token. The
// token's claims are decoded without signature verification: the client
// holds no copy of the server's signing key, and the server re-checks the
// signature on every call, so the decode only decides which screen the user
// lands on. Expired tokens are rejected locally. The master password is not
// restored; the session stays locked until Unlock.
func (m *Manager) TryAutoLogin() error {
	token, err := m.tokens.Load()
	if err != nil {
		return err
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("decode token expiry: %w", err)
	}
	if exp == nil || exp.Before(time.Now()) {
		return errors.New("persisted token expired")
	}
	login, _ := claims["login"].(string)
	if login == "" {
		return errors.New("persisted token has no login claim")
	}
	m.token = token
	m.currentUser = login
	return nil
}

// Unlock caches the master password. No validation happens here; a wrong
// password surfaces as an authentication failure on the next Sync.
func (m *Manager) Unlock(password string) error {
	if m.token == "" {
		return ErrNotAuthenticated
	}
	if password == "" {
		return errors.New("master password cannot be empty")
	}
	m.masterPassword = password
	return nil
}

// Logout clears the token, master password and current user, drops the
// decrypted cache and deletes the persisted token. A failed file delete is
// logged but never blocks the transition to anonymous.
func (m *Manager) Logout() {
	if err := m.tokens.Delete(); err != nil {
		m.log.Warnw("delete persisted token", "error", err)
	}
	m.token = ""
	m.masterPassword = ""
	m.currentUser = ""
	m.secrets = nil
}

// Sync fetches every stored secret, decrypts and decodes each one, and
// replaces the cached list. A record that fails to decrypt or parse fails
// the whole sync with an error naming the offending id; nothing is skipped
// silently.
func (m *Manager) Sync(ctx context.Context) ([]models.DecryptedSecret, error) {
	if m.token == "" {
		return nil, ErrNotAuthenticated
	}
	if m.masterPassword == "" {
		return nil, ErrNotUnlocked
	}

	stored, err := m.api.Secrets(ctx, m.token)
	if err != nil {
		return nil, err
	}

	decrypted := make([]models.DecryptedSecret, 0, len(stored))
	for _, s := range stored {
		plain, err := crypto.Decrypt(s.Data, m.masterPassword)
		if err != nil {
			return nil, fmt.Errorf("decrypt secret %s: %w", s.ID, err)
		}
		payload, err := models.UnmarshalPayload(plain)
		if err != nil {
			return nil, fmt.Errorf("decode secret %s: %w", s.ID, err)
		}
		decrypted = append(decrypted, models.DecryptedSecret{
			ID:        s.ID,
			Type:      s.Type,
			Payload:   payload,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	m.secrets = decrypted
	return decrypted, nil
}

// Add serializes, encrypts and upserts one payload. The local cache is not
// updated; callers re-sync to observe the addition.
func (m *Manager) Add(ctx context.Context, payload models.SecretPayload) error {
	if m.token == "" {
		return ErrNotAuthenticated
	}
	if m.masterPassword == "" {
		return ErrNotUnlocked
	}

	plain, err := models.MarshalPayload(payload)
	if err != nil {
		return err
	}
	blob, err := crypto.Encrypt(plain, m.masterPassword)
	if err != nil {
		return err
	}

	secret := models.StoredSecret{
		ID:        crypto.ContentID(plain),
		UserLogin: m.currentUser,
		Type:      string(payload.Kind),
		Data:      blob,
	}
	return m.api.Upsert(ctx, m.token, []models.StoredSecret{secret})
}

// Delete removes a secret remotely and, on success, from the local cache.
// Deleting needs authentication but not the master password.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if m.token == "" {
		return ErrNotAuthenticated
	}
	if err := m.api.Delete(ctx, m.token, id); err != nil {
		return err
	}
	for i, s := range m.secrets {
		if s.ID == id {
			m.secrets = append(m.secrets[:i], m.secrets[i+1:]...)
			break
		}
	}
	return nil
}

// Secrets returns the cached decrypted list from the last Sync.
func (m *Manager) Secrets() []models.DecryptedSecret { return m.secrets }

// CurrentUser returns the authenticated login, or "" when anonymous.
func (m *Manager) CurrentUser() string { return m.currentUser }

// Authenticated reports whether a token is held.
func (m *Manager) Authenticated() bool { return m.token != "" }

// Unlocked reports whether the master password is cached.
func (m *Manager) Unlocked() bool { return m.masterPassword != "" }
