package models

import (
	"database/sql"
	"time"
)

// Title is a catalog title materialized the first time a profile
// references it. TMDBID is the external catalog id and is unique.
type Title struct {
	ID          int64
	TMDBID      string
	IMDbID      sql.NullString
	Title       string
	Description string
	PosterURL   string
	BackdropURL string
	ReleaseYear sql.NullInt32
	Rating      sql.NullFloat64
	Type        string
	CreatedAt   time.Time
}

type WatchlistEntry struct {
	ID        int64
	ProfileID int64
	TitleID   int64
	AddedAt   time.Time
}

type HistoryEntry struct {
	ID          int64
	ProfileID   int64
	TitleID     int64
	LastWatched time.Time
}

// WatchlistRow is a watchlist entry joined with its title.
type WatchlistRow struct {
	WatchlistEntry
	Title Title
}

// HistoryRow is a history entry joined with its title.
type HistoryRow struct {
	HistoryEntry
	Title Title
}
