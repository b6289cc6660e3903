// Package repository provides PostgreSQL persistence for the candidate
// service.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vitesse-hr/vitesse/internal/models"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = errors.New("not found")

// PostgresUserRepository stores user accounts in PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a repository over the given database
// connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// UserExists checks whether an account with the given email exists.
func (r *PostgresUserRepository) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new account row.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.IsAdmin,
	)
	return err
}

// UserByEmail loads the account with the given email, or ErrNotFound.
func (r *PostgresUserRepository) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, first_name, last_name, email, password_hash, is_admin
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
