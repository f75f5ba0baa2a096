package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/models"
)

// Auth is the authentication backend as the session store sees it.
type Auth interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	// Restore exchanges a persisted refresh token for a fresh session.
	Restore(ctx context.Context, refreshToken string) (*models.User, error)
	SignOut(ctx context.Context) error
	ChangePassword(ctx context.Context, password string) error
	DeleteAccount(ctx context.Context) error
	// RefreshToken returns the current refresh token, empty when signed out.
	RefreshToken() string
}

// Store is the remote row store. Calls are scoped to the signed-in user by
// the backend.
type Store interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, name, color string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, name, color string) error
	DeleteProfile(ctx context.Context, id int64) error

	FindTitle(ctx context.Context, externalID string) (*models.Title, error)
	CreateTitle(ctx context.Context, t *models.Title) (*models.Title, error)

	FindWatchlistEntry(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error)
	InsertWatchlistEntry(ctx context.Context, profileID, titleID int64) error
	DeleteWatchlistEntry(ctx context.Context, profileID, titleID int64) error
	ListWatchlist(ctx context.Context, profileID int64) ([]models.WatchlistRow, error)

	FindHistoryEntry(ctx context.Context, profileID, titleID int64) (*models.HistoryEntry, error)
	InsertHistoryEntry(ctx context.Context, profileID, titleID int64, at time.Time) error
	TouchHistoryEntry(ctx context.Context, profileID, id int64, at time.Time) error
	DeleteHistoryEntry(ctx context.Context, profileID, titleID int64) error
	ListHistory(ctx context.Context, profileID int64) ([]models.HistoryRow, error)
}

type Client interface {
	Auth
	Store
	Ping(ctx context.Context) error
	Close() error
}
