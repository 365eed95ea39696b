package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	registerErr error
	loginToken  string
	loginErr    error
}

func (f *fakeAuthService) Register(ctx context.Context, login, password string) error {
	return f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, login, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty login",
			body:         `{"login":"","password":"pw"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty password",
			body:         `{"login":"alice","password":""}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:           "user already exists",
			body:           `{"login":"bob","password":"pw"}`,
			service:        &fakeAuthService{registerErr: models.ErrUserExists},
			expectedCode:   http.StatusConflict,
			expectedSubstr: "user already exists",
		},
		{
			name:           "service error",
			body:           `{"login":"alice","password":"pw"}`,
			service:        &fakeAuthService{registerErr: errors.New("db error")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name:         "success",
			body:         `{"login":"alice","password":"pw"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Register(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `{`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid credentials",
			body:         `{"login":"alice","password":"wrong"}`,
			service:      &fakeAuthService{loginErr: models.ErrInvalidCredentials},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "service error",
			body:         `{"login":"alice","password":"pw"}`,
			service:      &fakeAuthService{loginErr: errors.New("db error")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "success",
			body:         `{"login":"alice","password":"pw"}`,
			service:      &fakeAuthService{loginToken: "signed-token"},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if tt.expectedCode == http.StatusOK {
				var token models.Token
				if err := json.NewDecoder(res.Body).Decode(&token); err != nil {
					t.Fatalf("failed to decode token response: %v", err)
				}
				if token.Token != "signed-token" {
					t.Errorf("expected token %q, got %q", "signed-token", token.Token)
				}
			}
		})
	}
}
