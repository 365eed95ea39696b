package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkalinin/gopherkeeper/internal/middleware"
	"github.com/mkalinin/gopherkeeper/internal/models"
)

// SecretsService defines the secret-store operations required by the
// DataHandler.
type SecretsService interface {
	List(ctx context.Context, login string) ([]models.StoredSecret, error)
	Upsert(ctx context.Context, login string, secrets []models.StoredSecret) error
	// Delete returns models.ErrSecretNotFound when the id does not exist.
	Delete(ctx context.Context, login, id string) error
}

// DataHandler handles the bearer-gated /api/data endpoints. Every request
// reaching it carries an authenticated login in its context.
type DataHandler struct {
	SecretsService SecretsService
}

// List handles GET /api/data, returning all of the user's secrets.
func (h *DataHandler) List(w http.ResponseWriter, r *http.Request) {
	login := middleware.GetUserFromContext(r.Context())

	secrets, err := h.SecretsService.List(r.Context(), login)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if secrets == nil {
		secrets = []models.StoredSecret{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(secrets)
}

// Upsert handles POST /api/data with a {"secrets": [...]} body.
func (h *DataHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	login := middleware.GetUserFromContext(r.Context())

	var req models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.SecretsService.Upsert(r.Context(), login, req.Secrets); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /api/data?id=<id>.
func (h *DataHandler) Delete(w http.ResponseWriter, r *http.Request) {
	login := middleware.GetUserFromContext(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	err := h.SecretsService.Delete(r.Context(), login, id)
	if errors.Is(err, models.ErrSecretNotFound) {
		http.Error(w, "secret not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
