package service

import (
	"context"
	"errors"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// SecretsRepository defines the persistence operations needed by the
// SecretsService.
type SecretsRepository interface {
	// SecretsByUser retrieves all secrets belonging to the given login.
	SecretsByUser(ctx context.Context, login string) ([]models.StoredSecret, error)
	// UpsertSecrets inserts new secrets or updates existing ones.
	UpsertSecrets(ctx context.Context, login string, secrets []models.StoredSecret) error
	// DeleteSecrets removes the secrets with the given ids and reports how
	// many rows were removed.
	DeleteSecrets(ctx context.Context, login string, ids []string) (int64, error)
}

// SecretsService owns the server-side secret store logic. The payloads it
// handles are opaque ciphertext; nothing here can or does decrypt them.
type SecretsService struct {
	repo SecretsRepository
}

// NewSecretsService constructs a SecretsService with the given repository.
func NewSecretsService(repo SecretsRepository) *SecretsService {
	return &SecretsService{repo: repo}
}

// List returns all secrets owned by login.
func (s *SecretsService) List(ctx context.Context, login string) ([]models.StoredSecret, error) {
	return s.repo.SecretsByUser(ctx, login)
}

// Upsert stores the given secrets for login. Ownership is forced to the
// authenticated login regardless of what the client sent.
func (s *SecretsService) Upsert(ctx context.Context, login string, secrets []models.StoredSecret) error {
	for i := range secrets {
		if secrets[i].ID == "" || secrets[i].Type == "" || secrets[i].Data == "" {
			return errors.New("secret id, type and data are required")
		}
		secrets[i].UserLogin = login
	}
	return s.repo.UpsertSecrets(ctx, login, secrets)
}

// Delete removes one secret by id. Returns models.ErrSecretNotFound when
// the id does not exist for this login.
func (s *SecretsService) Delete(ctx context.Context, login, id string) error {
	removed, err := s.repo.DeleteSecrets(ctx, login, []string{id})
	if err != nil {
		return err
	}
	if removed == 0 {
		return models.ErrSecretNotFound
	}
	return nil
}
