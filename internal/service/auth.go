// Package service provides business logic for authentication and secret
// storage, delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// tokenTTL is the lifetime of an issued bearer token.
const tokenTTL = 24 * time.Hour

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// CreateUser stores a new user. Returns models.ErrUserExists when the
	// login is taken.
	CreateUser(ctx context.Context, login string, passwordHash []byte) error
	// PasswordHash returns the stored hash for a login. Returns
	// models.ErrInvalidCredentials for unknown users so callers cannot
	// distinguish a missing user from a wrong password.
	PasswordHash(ctx context.Context, login string) ([]byte, error)
}

// AuthService registers users and exchanges credentials for signed tokens.
type AuthService struct {
	repo      AuthRepository
	jwtSecret []byte
}

// NewAuthService constructs an AuthService signing tokens with jwtSecret.
func NewAuthService(repo AuthRepository, jwtSecret string) *AuthService {
	return &AuthService{repo: repo, jwtSecret: []byte(jwtSecret)}
}

// Register hashes the password with bcrypt and stores the user.
func (s *AuthService) Register(ctx context.Context, login, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, login, hash)
}

// Login verifies the credentials and issues an HS256 token carrying the
// login and an expiry claim.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	hash, err := s.repo.PasswordHash(ctx, login)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return "", models.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"login": login,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
