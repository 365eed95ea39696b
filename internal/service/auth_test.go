package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

type fakeAuthRepo struct {
	users     map[string][]byte
	createErr error
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[string][]byte{}}
}

func (f *fakeAuthRepo) CreateUser(ctx context.Context, login string, passwordHash []byte) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[login]; ok {
		return models.ErrUserExists
	}
	f.users[login] = passwordHash
	return nil
}

func (f *fakeAuthRepo) PasswordHash(ctx context.Context, login string) ([]byte, error) {
	hash, ok := f.users[login]
	if !ok {
		return nil, models.ErrInvalidCredentials
	}
	return hash, nil
}

func TestRegisterStoresBcryptHash(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, "secret")

	require.NoError(t, svc.Register(context.Background(), "alice", "pw"))

	hash, ok := repo.users["alice"]
	require.True(t, ok)
	assert.NotEqual(t, []byte("pw"), hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("pw")))
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, "secret")

	require.NoError(t, svc.Register(context.Background(), "alice", "pw"))
	err := svc.Register(context.Background(), "alice", "other")
	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, "secret")
	require.NoError(t, svc.Register(context.Background(), "alice", "pw"))

	raw, err := svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, "alice", claims["login"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), exp.Time, time.Minute)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, "secret")
	require.NoError(t, svc.Register(context.Background(), "alice", "pw"))

	_, err := svc.Login(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), "secret")

	_, err := svc.Login(context.Background(), "nobody", "pw")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRegisterRepoError(t *testing.T) {
	repo := newFakeAuthRepo()
	repo.createErr = errors.New("db down")
	svc := NewAuthService(repo, "secret")

	assert.ErrorContains(t, svc.Register(context.Background(), "alice", "pw"), "db down")
}
