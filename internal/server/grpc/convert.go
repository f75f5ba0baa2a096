package grpc

import (
	"database/sql"

	"github.com/dmitrijs2005/notflix/internal/rpc"
	"github.com/dmitrijs2005/notflix/internal/server/models"
	"github.com/dmitrijs2005/notflix/internal/server/services"
)

func sessionToRPC(s *services.Session) *rpc.SessionResponse {
	return &rpc.SessionResponse{
		User:         rpc.User{ID: s.User.ID, Email: s.User.Email},
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
	}
}

func profileToRPC(p *models.Profile) rpc.Profile {
	return rpc.Profile{ID: p.ID, UserID: p.UserID, Name: p.Name, Color: p.Color, CreatedAt: p.CreatedAt}
}

func titleToRPC(t *models.Title) rpc.Title {
	out := rpc.Title{
		ID:          t.ID,
		TMDBID:      t.TMDBID,
		Title:       t.Title,
		Description: t.Description,
		PosterURL:   t.PosterURL,
		BackdropURL: t.BackdropURL,
		Type:        t.Type,
		CreatedAt:   t.CreatedAt,
	}
	if t.IMDbID.Valid {
		out.IMDbID = t.IMDbID.String
	}
	if t.ReleaseYear.Valid {
		out.ReleaseYear = int(t.ReleaseYear.Int32)
	}
	if t.Rating.Valid {
		out.Rating = t.Rating.Float64
	}
	return out
}

// titleFromRPC treats zero values of the optional columns as absent.
func titleFromRPC(t *rpc.Title) *models.Title {
	return &models.Title{
		TMDBID:      t.TMDBID,
		IMDbID:      sql.NullString{String: t.IMDbID, Valid: t.IMDbID != ""},
		Title:       t.Title,
		Description: t.Description,
		PosterURL:   t.PosterURL,
		BackdropURL: t.BackdropURL,
		ReleaseYear: sql.NullInt32{Int32: int32(t.ReleaseYear), Valid: t.ReleaseYear != 0},
		Rating:      sql.NullFloat64{Float64: t.Rating, Valid: t.Rating != 0},
		Type:        t.Type,
	}
}

func watchlistEntryToRPC(e *models.WatchlistEntry) *rpc.WatchlistEntry {
	return &rpc.WatchlistEntry{ID: e.ID, ProfileID: e.ProfileID, TitleID: e.TitleID, AddedAt: e.AddedAt}
}

func historyEntryToRPC(e *models.HistoryEntry) *rpc.HistoryEntry {
	return &rpc.HistoryEntry{ID: e.ID, ProfileID: e.ProfileID, TitleID: e.TitleID, LastWatched: e.LastWatched}
}
