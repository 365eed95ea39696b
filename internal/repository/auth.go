// Package repository provides PostgreSQL persistence for users and secrets.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkalinin/gopherkeeper/internal/models"
)

// PostgresAuthRepository implements user persistence against PostgreSQL.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a repository over the given connection.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateUser inserts a new user. A conflicting login inserts nothing and is
// reported as models.ErrUserExists.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, login string, passwordHash []byte) error {
	res, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (login, password_hash) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		login, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if rows == 0 {
		return models.ErrUserExists
	}
	return nil
}

// PasswordHash returns the stored bcrypt hash for a login. Unknown logins
// map to models.ErrInvalidCredentials.
func (r *PostgresAuthRepository) PasswordHash(ctx context.Context, login string) ([]byte, error) {
	var hash []byte
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT password_hash FROM users WHERE login = $1`,
		login,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("password hash: %w", err)
	}
	return hash, nil
}
