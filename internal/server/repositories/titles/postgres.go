// Package titles stores catalog titles keyed by their external catalog id.
package titles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/dbx"
	"github.com/dmitrijs2005/notflix/internal/server/models"
)

type Repository interface {
	FindByExternalID(ctx context.Context, tmdbID string) (*models.Title, error)
	// Create inserts t; a taken tmdb id yields common.ErrorAlreadyExists.
	Create(ctx context.Context, t *models.Title) (*models.Title, error)
}

// Columns selects a full title row; joins alias movies as m.
const Columns = `m.id, m.tmdb_id, m.imdb_id, m.title, m.description, m.poster_url, m.backdrop_url,
		m.release_year, m.rating, m.type, m.created_at`

// ScanTargets returns the destinations matching Columns.
func ScanTargets(t *models.Title) []any {
	return []any{&t.ID, &t.TMDBID, &t.IMDbID, &t.Title, &t.Description, &t.PosterURL, &t.BackdropURL,
		&t.ReleaseYear, &t.Rating, &t.Type, &t.CreatedAt}
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByExternalID(ctx context.Context, tmdbID string) (*models.Title, error) {
	query := `SELECT ` + Columns + `
		FROM movies m
		WHERE m.tmdb_id = $1
	`
	t := &models.Title{}
	if err := r.db.QueryRowContext(ctx, query, tmdbID).Scan(ScanTargets(t)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Title) (*models.Title, error) {
	query := `
		INSERT INTO movies (tmdb_id, imdb_id, title, description, poster_url, backdrop_url, release_year, rating, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		t.TMDBID, t.IMDbID, t.Title, t.Description, t.PosterURL, t.BackdropURL, t.ReleaseYear, t.Rating, t.Type,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}
