package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// newTestServer fakes the vault API: one user, an in-memory secret map,
// bearer-token checks on the data endpoints.
func newTestServer(t *testing.T) (*httptest.Server, map[string]models.StoredSecret) {
	t.Helper()
	secrets := map[string]models.StoredSecret{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.AuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Login == "taken" {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.AuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "pw" {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Token{Token: "test-token"})
	})
	mux.HandleFunc("/api/data", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			http.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodGet:
			list := make([]models.StoredSecret, 0, len(secrets))
			for _, s := range secrets {
				list = append(list, s)
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(list)
		case http.MethodPost:
			var req models.SyncRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			for _, s := range req.Secrets {
				secrets[s.ID] = s
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if _, ok := secrets[id]; !ok {
				http.Error(w, "secret not found", http.StatusNotFound)
				return
			}
			delete(secrets, id)
			w.WriteHeader(http.StatusOK)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, secrets
}

func TestRegister(t *testing.T) {
	srv, _ := newTestServer(t)
	client := New(srv.URL)

	assert.NoError(t, client.Register(context.Background(), "alice", "pw"))

	err := client.Register(context.Background(), "taken", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	client := New(srv.URL)

	token, err := client.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)

	_, err = client.Login(context.Background(), "alice", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSecretsLifecycle(t *testing.T) {
	srv, stored := newTestServer(t)
	client := New(srv.URL)

	secret := models.StoredSecret{ID: "id-1", UserLogin: "alice", Type: "note", Data: "b64blob"}
	require.NoError(t, client.Upsert(context.Background(), "test-token", []models.StoredSecret{secret}))
	assert.Len(t, stored, 1)

	list, err := client.Secrets(context.Background(), "test-token")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, secret, list[0])

	require.NoError(t, client.Delete(context.Background(), "test-token", "id-1"))
	assert.Empty(t, stored)

	err = client.Delete(context.Background(), "test-token", "id-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestBearerRequired(t *testing.T) {
	srv, _ := newTestServer(t)
	client := New(srv.URL)

	_, err := client.Secrets(context.Background(), "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
