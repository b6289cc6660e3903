package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vitesse-hr/vitesse/internal/models"
)

const candidateColumns = `id, first_name, last_name, email, phone, note, linkedin_url, is_favorite`

// PostgresCandidateRepository stores candidate records in PostgreSQL.
type PostgresCandidateRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCandidateRepository creates a repository over the given
// database connection.
func NewPostgresCandidateRepository(db *sql.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{DB: db}
}

func scanCandidate(row interface{ Scan(...any) error }) (models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Note, &c.LinkedinURL, &c.IsFavorite)
	return c, err
}

// List returns every candidate, ordered by insertion so the client sees
// a stable roster order.
func (r *PostgresCandidateRepository) List(ctx context.Context) ([]models.Candidate, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Get loads one candidate by id, or ErrNotFound.
func (r *PostgresCandidateRepository) Get(ctx context.Context, id string) (models.Candidate, error) {
	c, err := scanCandidate(r.DB.QueryRowContext(
		ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, err
	}
	return c, nil
}

// Create inserts a new candidate row.
func (r *PostgresCandidateRepository) Create(ctx context.Context, c models.Candidate) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO candidates (id, first_name, last_name, email, phone, note, linkedin_url, is_favorite)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Note, c.LinkedinURL, c.IsFavorite,
	)
	return err
}

// Update fully replaces the candidate's mutable fields. The favorite
// flag is not touched here; only ToggleFavorite changes it.
func (r *PostgresCandidateRepository) Update(ctx context.Context, c models.Candidate) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE candidates
		 SET first_name = $2, last_name = $3, email = $4, phone = $5, note = $6, linkedin_url = $7
		 WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Note, c.LinkedinURL,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the candidate row, or returns ErrNotFound.
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFavorite flips the favorite flag in place and returns the
// resulting row, so the server stays the single authority on the value.
func (r *PostgresCandidateRepository) ToggleFavorite(ctx context.Context, id string) (models.Candidate, error) {
	c, err := scanCandidate(r.DB.QueryRowContext(
		ctx,
		`UPDATE candidates SET is_favorite = NOT is_favorite WHERE id = $1
		 RETURNING `+candidateColumns,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, err
	}
	return c, nil
}
