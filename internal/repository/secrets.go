package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// PostgresSecretsRepository implements secret persistence against
// PostgreSQL. Secrets are keyed by (id, user_login) so identical content
// ids of different users never clash.
type PostgresSecretsRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresSecretsRepository creates a repository over the given
// connection.
func NewPostgresSecretsRepository(db *sql.DB) *PostgresSecretsRepository {
	return &PostgresSecretsRepository{DB: db}
}

// SecretsByUser fetches all secrets for the given login, oldest first.
func (r *PostgresSecretsRepository) SecretsByUser(ctx context.Context, login string) ([]models.StoredSecret, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_login, type, data, created_at, updated_at
		  FROM secrets WHERE user_login = $1 ORDER BY created_at
	`, login)
	if err != nil {
		return nil, fmt.Errorf("secrets by user: %w", err)
	}
	defer rows.Close()

	var secrets []models.StoredSecret
	for rows.Next() {
		var (
			sec                models.StoredSecret
			createdAt, updated time.Time
		)
		if err := rows.Scan(&sec.ID, &sec.UserLogin, &sec.Type, &sec.Data, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("scan secret: %w", err)
		}
		sec.CreatedAt = &createdAt
		sec.UpdatedAt = &updated
		secrets = append(secrets, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("secrets by user: %w", err)
	}
	return secrets, nil
}

// UpsertSecrets inserts or updates the given secrets within one
// transaction. An existing (id, user_login) pair keeps its created_at and
// gets a fresh updated_at.
func (r *PostgresSecretsRepository) UpsertSecrets(ctx context.Context, login string, secrets []models.StoredSecret) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, sec := range secrets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO secrets (id, user_login, type, data)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id, user_login) DO UPDATE SET
				type = EXCLUDED.type,
				data = EXCLUDED.data,
				updated_at = now()
		`, sec.ID, login, sec.Type, sec.Data)
		if err != nil {
			return fmt.Errorf("upsert secret %s: %w", sec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteSecrets removes secrets by id for the given login and reports the
// number of rows removed.
func (r *PostgresSecretsRepository) DeleteSecrets(ctx context.Context, login string, ids []string) (int64, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM secrets WHERE user_login = $1 AND id = ANY($2)`,
		login, pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("delete secrets: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete secrets: %w", err)
	}
	return removed, nil
}
