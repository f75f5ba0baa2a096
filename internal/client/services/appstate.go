package services

import (
	"context"

	"github.com/dmitrijs2005/notflix/internal/client/catalog"
	"github.com/dmitrijs2005/notflix/internal/client/client"
	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/client/player"
	"github.com/dmitrijs2005/notflix/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/logging"
)

// Catalog is the part of the catalog gateway the App consumes.
type Catalog interface {
	FetchBatch(ctx context.Context, shelves []catalog.Shelf) ([]catalog.Row, error)
	Search(ctx context.Context, query string) ([]models.CatalogTitle, error)
	Details(ctx context.Context, id int64, kind models.MediaKind) (*models.TitleDetails, error)
}

type Player interface {
	Embed(kind models.MediaKind, tmdbID, imdbID, title string) player.Locator
	EmbedDetails(d *models.TitleDetails) player.Locator
}

// App is the explicitly constructed client state. Each instance owns its
// own stores; nothing is package-global.
type App struct {
	Session   *SessionStore
	Profiles  *ProfileStore
	Watchlist *Watchlist
	History   *ContinueWatching

	catalog Catalog
	player  Player
	logger  logging.Logger
}

// HomeView is one rendered browse page.
type HomeView struct {
	Rows             []catalog.Row
	Watchlist        []models.EnrichedTitle
	ContinueWatching []models.EnrichedTitle
}

// NewApp builds the stores and wires session -> profiles -> synchronizers.
func NewApp(c client.Client, meta metadata.Repository, cat Catalog, p Player, logger logging.Logger) *App {
	a := &App{
		Session:   NewSessionStore(c, meta, logger.With("component", "session")),
		Profiles:  NewProfileStore(c, meta, logger.With("component", "profiles")),
		Watchlist: NewWatchlist(c, logger.With("component", "watchlist")),
		History:   NewContinueWatching(c, logger.With("component", "history")),
		catalog:   cat,
		player:    p,
		logger:    logger,
	}

	a.Session.Subscribe(a.Profiles.OnUserChanged)
	a.Profiles.Subscribe(a.onProfileChanged)
	return a
}

func (a *App) onProfileChanged(ctx context.Context, p *models.Profile) {
	var id int64
	if p != nil {
		id = p.ID
	}
	a.Watchlist.Reset(id)
	a.History.Reset(id)
	if p == nil {
		return
	}
	a.Watchlist.Refresh(ctx)
	a.History.Refresh(ctx)
}

// Start restores the persisted session, which in turn loads profiles and
// the current profile's projections.
func (a *App) Start(ctx context.Context) error {
	err := a.Session.Restore(ctx)
	if a.Session.User() == nil {
		a.Profiles.settleSignedOut()
	}
	return err
}

// Home fetches every shelf, all or nothing, plus the current projections.
func (a *App) Home(ctx context.Context, shelves []catalog.Shelf) (*HomeView, error) {
	rows, err := a.catalog.FetchBatch(ctx, shelves)
	if err != nil {
		return nil, &common.RemoteError{Op: "load catalog", Err: err}
	}

	v := &HomeView{Rows: rows}
	if a.Profiles.Current() != nil {
		v.Watchlist = a.Watchlist.Refresh(ctx)
		v.ContinueWatching = a.History.Refresh(ctx)
	}
	return v, nil
}

func (a *App) Search(ctx context.Context, query string) ([]models.CatalogTitle, error) {
	items, err := a.catalog.Search(ctx, query)
	if err != nil {
		return nil, &common.RemoteError{Op: "search", Err: err}
	}
	return items, nil
}

// Title loads catalog details for one item.
func (a *App) Title(ctx context.Context, id int64, kind models.MediaKind) (*models.TitleDetails, error) {
	d, err := a.catalog.Details(ctx, id, kind)
	if err != nil {
		return nil, &common.RemoteError{Op: "load title", Err: err}
	}
	return d, nil
}

// Play records the title in continue watching for the current profile and
// returns the player locator. History and details failures are logged; the
// title still plays, by catalog id when the details are unavailable.
func (a *App) Play(ctx context.Context, title models.CatalogTitle) player.Locator {
	if p := a.Profiles.Current(); p != nil {
		if err := a.History.AddToContinueWatching(ctx, p.ID, title); err != nil {
			a.logger.Warn(ctx, "failed to record playback", "profile_id", p.ID, "external_id", title.ExternalID(), "error", err)
		}
	}

	d, err := a.catalog.Details(ctx, title.ID, title.Kind())
	if err != nil {
		a.logger.Warn(ctx, "failed to load title details", "external_id", title.ExternalID(), "error", err)
		return a.player.Embed(title.Kind(), title.ExternalID(), "", title.DisplayTitle())
	}
	return a.player.EmbedDetails(d)
}

// ClosePlayer refreshes continue watching after playback ends.
func (a *App) ClosePlayer(ctx context.Context) []models.EnrichedTitle {
	return a.History.Refresh(ctx)
}

func (a *App) ToggleWatchlist(ctx context.Context, title models.CatalogTitle) (bool, error) {
	return a.Watchlist.Toggle(ctx, title)
}

func (a *App) DismissContinueWatching(ctx context.Context, externalID string) error {
	return a.History.Dismiss(ctx, externalID)
}
