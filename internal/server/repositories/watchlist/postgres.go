// Package watchlist stores the per-profile saved titles.
package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/dbx"
	"github.com/dmitrijs2005/notflix/internal/server/models"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/titles"
)

type Repository interface {
	Find(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error)
	// Insert adds an entry; an existing (profile, title) pair yields
	// common.ErrorAlreadyExists.
	Insert(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error)
	// Delete removes the entry if present.
	Delete(ctx context.Context, profileID, titleID int64) error
	// List returns entries joined with titles, newest first.
	List(ctx context.Context, profileID int64) ([]models.WatchlistRow, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Find(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error) {
	query := `
		SELECT id, profile_id, movie_id, added_at
		FROM watchlist
		WHERE profile_id = $1 AND movie_id = $2
	`
	e := &models.WatchlistEntry{}
	if err := r.db.QueryRowContext(ctx, query, profileID, titleID).Scan(&e.ID, &e.ProfileID, &e.TitleID, &e.AddedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error) {
	query := `
		INSERT INTO watchlist (profile_id, movie_id)
		VALUES ($1, $2)
		RETURNING id, added_at
	`
	e := &models.WatchlistEntry{ProfileID: profileID, TitleID: titleID}
	if err := r.db.QueryRowContext(ctx, query, profileID, titleID).Scan(&e.ID, &e.AddedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, profileID, titleID int64) error {
	query := `
		DELETE FROM watchlist
		WHERE profile_id = $1 AND movie_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, profileID, titleID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, profileID int64) ([]models.WatchlistRow, error) {
	query := `
		SELECT w.id, w.profile_id, w.movie_id, w.added_at, ` + titles.Columns + `
		FROM watchlist w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.profile_id = $1
		ORDER BY w.added_at DESC, w.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.WatchlistRow, 0)
	for rows.Next() {
		var row models.WatchlistRow
		dest := append([]any{&row.ID, &row.ProfileID, &row.TitleID, &row.AddedAt}, titles.ScanTargets(&row.Title)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
