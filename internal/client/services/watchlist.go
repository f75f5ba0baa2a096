package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/logging"
)

type WatchlistBackend interface {
	TitleBackend
	FindWatchlistEntry(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error)
	InsertWatchlistEntry(ctx context.Context, profileID, titleID int64) error
	DeleteWatchlistEntry(ctx context.Context, profileID, titleID int64) error
	ListWatchlist(ctx context.Context, profileID int64) ([]models.WatchlistRow, error)
}

// Watchlist synchronizes a profile's saved titles with the backend and keeps
// a projection for the current profile.
type Watchlist struct {
	store  WatchlistBackend
	logger logging.Logger
	now    func() time.Time

	mu        sync.Mutex
	profileID int64
	gen       uint64
	items     []models.EnrichedTitle
}

func NewWatchlist(store WatchlistBackend, logger logging.Logger) *Watchlist {
	return &Watchlist{store: store, logger: logger, now: time.Now}
}

// GetWatchlist returns the profile's titles, newest added first.
func (w *Watchlist) GetWatchlist(ctx context.Context, profileID int64) ([]models.EnrichedTitle, error) {
	rows, err := w.store.ListWatchlist(ctx, profileID)
	if err != nil {
		return nil, &common.RemoteError{Op: "get watchlist", Err: err}
	}
	return FromWatchlistRows(rows), nil
}

// AddToWatchlist links the title to the profile, storing the title first if
// needed. Adding a title that is already listed succeeds.
func (w *Watchlist) AddToWatchlist(ctx context.Context, profileID int64, title models.CatalogTitle) error {
	titleID, err := resolveTitle(ctx, w.store, title)
	if err != nil {
		return &common.RemoteError{Op: "add to watchlist", Err: err}
	}

	err = w.store.InsertWatchlistEntry(ctx, profileID, titleID)
	if err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
		return &common.RemoteError{Op: "add to watchlist", Err: err}
	}
	return nil
}

// RemoveFromWatchlist is a no-op when the title or the entry is absent.
func (w *Watchlist) RemoveFromWatchlist(ctx context.Context, profileID int64, externalID string) error {
	titleID, ok, err := lookupTitle(ctx, w.store, externalID)
	if err != nil {
		return &common.RemoteError{Op: "remove from watchlist", Err: err}
	}
	if !ok {
		return nil
	}

	err = w.store.DeleteWatchlistEntry(ctx, profileID, titleID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return &common.RemoteError{Op: "remove from watchlist", Err: err}
	}
	return nil
}

func (w *Watchlist) IsInWatchlist(ctx context.Context, profileID int64, externalID string) (bool, error) {
	titleID, ok, err := lookupTitle(ctx, w.store, externalID)
	if err != nil {
		return false, &common.RemoteError{Op: "check watchlist", Err: err}
	}
	if !ok {
		return false, nil
	}

	_, err = w.store.FindWatchlistEntry(ctx, profileID, titleID)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &common.RemoteError{Op: "check watchlist", Err: err}
	}
	return true, nil
}

// Reset drops the projection and scopes it to profileID (0 for none).
func (w *Watchlist) Reset(profileID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	w.profileID = profileID
	w.items = nil
}

// Refresh refetches the projection for the current profile. A failed read
// is logged and leaves the projection empty; a reply that was overtaken by a
// reset, a toggle or a newer refresh is dropped.
func (w *Watchlist) Refresh(ctx context.Context) []models.EnrichedTitle {
	w.mu.Lock()
	pid := w.profileID
	w.gen++
	gen := w.gen
	w.mu.Unlock()

	if pid == 0 {
		return nil
	}

	items, err := w.GetWatchlist(ctx, pid)
	if err != nil {
		w.logger.Error(ctx, "failed to fetch watchlist", "profile_id", pid, "error", err)
		items = []models.EnrichedTitle{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		w.logger.Debug(ctx, "discarding stale watchlist", "profile_id", pid)
		return cloneTitles(w.items)
	}
	w.items = items
	return cloneTitles(items)
}

func (w *Watchlist) Items() []models.EnrichedTitle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneTitles(w.items)
}

func (w *Watchlist) Contains(externalID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return indexOf(w.items, externalID) >= 0
}

// Toggle flips membership of title for the current profile. The projection
// is patched before the remote call and is not rolled back if the call
// fails; the error is returned for the caller to handle.
func (w *Watchlist) Toggle(ctx context.Context, title models.CatalogTitle) (bool, error) {
	ext := title.ExternalID()

	w.mu.Lock()
	pid := w.profileID
	if pid == 0 {
		w.mu.Unlock()
		return false, common.ErrNoProfile
	}
	w.gen++
	i := indexOf(w.items, ext)
	listed := i >= 0
	if listed {
		w.items = append(w.items[:i:i], w.items[i+1:]...)
	} else {
		w.items = append([]models.EnrichedTitle{enrichCatalog(title, w.now())}, w.items...)
	}
	w.mu.Unlock()

	if listed {
		return false, w.RemoveFromWatchlist(ctx, pid, ext)
	}
	return true, w.AddToWatchlist(ctx, pid, title)
}

func indexOf(items []models.EnrichedTitle, externalID string) int {
	for i := range items {
		if items[i].ExternalID == externalID {
			return i
		}
	}
	return -1
}

// cloneTitles returns a non-nil copy of items.
func cloneTitles(items []models.EnrichedTitle) []models.EnrichedTitle {
	out := make([]models.EnrichedTitle, len(items))
	copy(out, items)
	return out
}
