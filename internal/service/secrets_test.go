package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

type fakeSecretsRepo struct {
	upserted   []models.StoredSecret
	deletedIDs []string
	removed    int64
	err        error
}

func (f *fakeSecretsRepo) SecretsByUser(ctx context.Context, login string) ([]models.StoredSecret, error) {
	return f.upserted, f.err
}

func (f *fakeSecretsRepo) UpsertSecrets(ctx context.Context, login string, secrets []models.StoredSecret) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, secrets...)
	return nil
}

func (f *fakeSecretsRepo) DeleteSecrets(ctx context.Context, login string, ids []string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deletedIDs = append(f.deletedIDs, ids...)
	return f.removed, nil
}

func TestUpsertForcesOwnership(t *testing.T) {
	repo := &fakeSecretsRepo{}
	svc := NewSecretsService(repo)

	secrets := []models.StoredSecret{
		{ID: "id-1", UserLogin: "mallory", Type: "note", Data: "blob"},
	}
	require.NoError(t, svc.Upsert(context.Background(), "alice", secrets))

	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "alice", repo.upserted[0].UserLogin)
}

func TestUpsertRejectsIncompleteSecrets(t *testing.T) {
	svc := NewSecretsService(&fakeSecretsRepo{})

	tests := []struct {
		name   string
		secret models.StoredSecret
	}{
		{"missing id", models.StoredSecret{Type: "note", Data: "blob"}},
		{"missing type", models.StoredSecret{ID: "id-1", Data: "blob"}},
		{"missing data", models.StoredSecret{ID: "id-1", Type: "note"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Upsert(context.Background(), "alice", []models.StoredSecret{tt.secret})
			assert.Error(t, err)
		})
	}
}

func TestDeleteReportsMissing(t *testing.T) {
	repo := &fakeSecretsRepo{removed: 0}
	svc := NewSecretsService(repo)

	err := svc.Delete(context.Background(), "alice", "gone")
	assert.ErrorIs(t, err, models.ErrSecretNotFound)
	assert.Equal(t, []string{"gone"}, repo.deletedIDs)
}

func TestDeleteSingleID(t *testing.T) {
	repo := &fakeSecretsRepo{removed: 1}
	svc := NewSecretsService(repo)

	require.NoError(t, svc.Delete(context.Background(), "alice", "id-1"))
	assert.Equal(t, []string{"id-1"}, repo.deletedIDs)
}
