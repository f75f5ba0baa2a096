package services

import (
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/models"
)

// Enrich maps one stored title row to the shape handed to callers. Anything
// that is not a series is a movie.
func Enrich(entryID int64, at time.Time, t models.Title) models.EnrichedTitle {
	kind := models.Movie
	if t.Type == models.TV {
		kind = models.TV
	}
	return models.EnrichedTitle{
		EntryID:      entryID,
		TitleID:      t.ID,
		ExternalID:   t.TMDBID,
		IMDbID:       t.IMDbID,
		Title:        t.Title,
		Description:  t.Description,
		PosterPath:   t.PosterURL,
		BackdropPath: t.BackdropURL,
		ReleaseYear:  t.ReleaseYear,
		Rating:       t.Rating,
		Kind:         kind,
		At:           at,
	}
}

func FromWatchlistRows(rows []models.WatchlistRow) []models.EnrichedTitle {
	out := make([]models.EnrichedTitle, 0, len(rows))
	for _, r := range rows {
		out = append(out, Enrich(r.ID, r.AddedAt, r.Title))
	}
	return out
}

func FromHistoryRows(rows []models.HistoryRow) []models.EnrichedTitle {
	out := make([]models.EnrichedTitle, 0, len(rows))
	for _, r := range rows {
		out = append(out, Enrich(r.ID, r.LastWatched, r.Title))
	}
	return out
}

// TitleFromCatalog is the row materialized the first time a catalog item is
// referenced. Image fields keep the catalog's relative paths.
func TitleFromCatalog(c models.CatalogTitle) *models.Title {
	return &models.Title{
		TMDBID:      c.ExternalID(),
		Title:       c.DisplayTitle(),
		Description: c.Overview,
		PosterURL:   c.PosterPath,
		BackdropURL: c.BackdropPath,
		ReleaseYear: c.Year(),
		Rating:      c.VoteAverage,
		Type:        c.Kind(),
	}
}

// enrichCatalog is the optimistic projection row for an item not yet stored.
func enrichCatalog(c models.CatalogTitle, at time.Time) models.EnrichedTitle {
	return Enrich(0, at, *TitleFromCatalog(c))
}
