// Package history stores per-profile watch history ("continue watching").
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/dbx"
	"github.com/dmitrijs2005/notflix/internal/server/models"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/titles"
)

type Repository interface {
	Find(ctx context.Context, profileID, titleID int64) (*models.HistoryEntry, error)
	Insert(ctx context.Context, profileID, titleID int64, at time.Time) (*models.HistoryEntry, error)
	// Touch moves last_watched of entry id (owned by profileID) to at.
	Touch(ctx context.Context, profileID, id int64, at time.Time) error
	Delete(ctx context.Context, profileID, titleID int64) error
	// List returns entries joined with titles, most recently watched first.
	List(ctx context.Context, profileID int64) ([]models.HistoryRow, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Find(ctx context.Context, profileID, titleID int64) (*models.HistoryEntry, error) {
	query := `
		SELECT id, profile_id, movie_id, last_watched
		FROM watch_history
		WHERE profile_id = $1 AND movie_id = $2
	`
	e := &models.HistoryEntry{}
	if err := r.db.QueryRowContext(ctx, query, profileID, titleID).Scan(&e.ID, &e.ProfileID, &e.TitleID, &e.LastWatched); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, profileID, titleID int64, at time.Time) (*models.HistoryEntry, error) {
	query := `
		INSERT INTO watch_history (profile_id, movie_id, last_watched)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	e := &models.HistoryEntry{ProfileID: profileID, TitleID: titleID, LastWatched: at}
	if err := r.db.QueryRowContext(ctx, query, profileID, titleID, at).Scan(&e.ID); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Touch(ctx context.Context, profileID, id int64, at time.Time) error {
	query := `
		UPDATE watch_history SET last_watched = $3
		WHERE id = $1 AND profile_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, profileID, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, profileID, titleID int64) error {
	query := `
		DELETE FROM watch_history
		WHERE profile_id = $1 AND movie_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, profileID, titleID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, profileID int64) ([]models.HistoryRow, error) {
	query := `
		SELECT h.id, h.profile_id, h.movie_id, h.last_watched, ` + titles.Columns + `
		FROM watch_history h
		JOIN movies m ON m.id = h.movie_id
		WHERE h.profile_id = $1
		ORDER BY h.last_watched DESC, h.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.HistoryRow, 0)
	for rows.Next() {
		var row models.HistoryRow
		dest := append([]any{&row.ID, &row.ProfileID, &row.TitleID, &row.LastWatched}, titles.ScanTargets(&row.Title)...)
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
