package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/catalog"
	"github.com/dmitrijs2005/notflix/internal/client/client"
	"github.com/dmitrijs2005/notflix/internal/client/config"
	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/client/player"
	"github.com/dmitrijs2005/notflix/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notflix/internal/client/services"
	"github.com/dmitrijs2005/notflix/internal/filex"
	"github.com/dmitrijs2005/notflix/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config *config.Config
	state  *services.App
	api    client.Client
	db     *sql.DB
	cache  catalog.Cache
	images catalog.Images
	logger logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode

	// items the user has seen, by catalog id, so commands can refer to them
	seen map[string]models.CatalogTitle
	// locator of the title being played, empty when the player is closed
	playing *player.Locator
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, "text", os.Stderr)

	dir, err := filex.EnsureDir(filepath.Dir(c.LocalDBPath))
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, filepath.Base(c.LocalDBPath)))
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.LocalDBPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewNotflixClientService(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cache := catalog.NewRedisCache(ctx, c.RedisAddr, c.CatalogCacheTTL, logger.With("component", "cache"))
	cat := catalog.NewClient(c.TMDBAPIKey, c.TMDBBaseURL, cache, logger.With("component", "catalog"))
	meta := metadata.NewSQLiteRepository(db)

	state := services.NewApp(apiClient, meta, cat, player.NewEmbedder(c.PlayerBaseURL), logger)
	apiClient.OnTokenRefresh(state.Session.TokenRefreshed)

	return &App{
		config: c,
		state:  state,
		api:    apiClient,
		db:     db,
		cache:  cache,
		images: catalog.NewImages(c.ImageBaseURL),
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		seen:   map[string]models.CatalogTitle{},
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.close()
	a.Root(ctx)
}

func (a *App) close() {
	if err := a.api.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing backend connection", "error", err)
	}
	if c, ok := a.cache.(io.Closer); ok {
		_ = c.Close()
	}
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.state.Session.User() != nil
}

// StartOnlineStatusWatcher probes p every interval and flips the mode when
// reachability changes. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, p pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx, p)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context, p pinger) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := p.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
	} else {
		a.setMode(ctx, ModeOnline)
	}
}

func (a *App) remember(items []models.CatalogTitle) {
	for _, it := range items {
		a.seen[it.ExternalID()] = it
	}
}
