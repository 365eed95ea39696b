// Package http provides the HTTP handlers and routing for the GopherKeeper
// API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// AuthService defines the authentication operations required by the
// handlers.
type AuthService interface {
	// Register creates a user. Returns models.ErrUserExists for taken logins.
	Register(ctx context.Context, login, password string) error
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, login, password string) (string, error)
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	AuthService AuthService
}

// Register handles POST /api/register.
// It expects a JSON body with non-empty "login" and "password" fields.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.AuthService.Register(r.Context(), req.Login, req.Password)
	if errors.Is(err, models.ErrUserExists) {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Login handles POST /api/login and responds with {"token": ...}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Login, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.Token{Token: token})
}
