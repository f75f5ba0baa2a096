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

type HistoryBackend interface {
	TitleBackend
	FindHistoryEntry(ctx context.Context, profileID, titleID int64) (*models.HistoryEntry, error)
	InsertHistoryEntry(ctx context.Context, profileID, titleID int64, at time.Time) error
	TouchHistoryEntry(ctx context.Context, profileID, id int64, at time.Time) error
	DeleteHistoryEntry(ctx context.Context, profileID, titleID int64) error
	ListHistory(ctx context.Context, profileID int64) ([]models.HistoryRow, error)
}

// ContinueWatching synchronizes a profile's recently opened titles. Only
// recency is tracked, never a playback position.
type ContinueWatching struct {
	store  HistoryBackend
	logger logging.Logger
	now    func() time.Time

	mu        sync.Mutex
	profileID int64
	gen       uint64
	items     []models.EnrichedTitle
}

func NewContinueWatching(store HistoryBackend, logger logging.Logger) *ContinueWatching {
	return &ContinueWatching{store: store, logger: logger, now: time.Now}
}

// AddToContinueWatching records that the profile opened title now. Repeated
// calls bump last_watched on the one entry.
func (h *ContinueWatching) AddToContinueWatching(ctx context.Context, profileID int64, title models.CatalogTitle) error {
	titleID, err := resolveTitle(ctx, h.store, title)
	if err != nil {
		return &common.RemoteError{Op: "add to continue watching", Err: err}
	}

	if err := h.upsert(ctx, profileID, titleID, h.now()); err != nil {
		return &common.RemoteError{Op: "add to continue watching", Err: err}
	}
	return nil
}

func (h *ContinueWatching) upsert(ctx context.Context, profileID, titleID int64, at time.Time) error {
	e, err := h.store.FindHistoryEntry(ctx, profileID, titleID)
	if err == nil {
		return h.store.TouchHistoryEntry(ctx, profileID, e.ID, at)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	err = h.store.InsertHistoryEntry(ctx, profileID, titleID, at)
	if !errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}

	// lost an insert race; bump the winner's row instead
	e, err = h.store.FindHistoryEntry(ctx, profileID, titleID)
	if err != nil {
		return err
	}
	return h.store.TouchHistoryEntry(ctx, profileID, e.ID, at)
}

// GetContinueWatching returns the profile's titles, most recent first.
func (h *ContinueWatching) GetContinueWatching(ctx context.Context, profileID int64) ([]models.EnrichedTitle, error) {
	rows, err := h.store.ListHistory(ctx, profileID)
	if err != nil {
		return nil, &common.RemoteError{Op: "get continue watching", Err: err}
	}
	return FromHistoryRows(rows), nil
}

// RemoveFromContinueWatching deletes the entry; an unknown title or entry is
// a no-op.
func (h *ContinueWatching) RemoveFromContinueWatching(ctx context.Context, profileID int64, externalID string) error {
	titleID, ok, err := lookupTitle(ctx, h.store, externalID)
	if err != nil {
		return &common.RemoteError{Op: "remove from continue watching", Err: err}
	}
	if !ok {
		return nil
	}

	err = h.store.DeleteHistoryEntry(ctx, profileID, titleID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return &common.RemoteError{Op: "remove from continue watching", Err: err}
	}
	return nil
}

// Reset drops the projection and scopes it to profileID (0 for none).
func (h *ContinueWatching) Reset(profileID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	h.profileID = profileID
	h.items = nil
}

// Refresh refetches the projection for the current profile. Failures are
// logged and leave it empty; overtaken replies are dropped.
func (h *ContinueWatching) Refresh(ctx context.Context) []models.EnrichedTitle {
	h.mu.Lock()
	pid := h.profileID
	h.gen++
	gen := h.gen
	h.mu.Unlock()

	if pid == 0 {
		return nil
	}

	items, err := h.GetContinueWatching(ctx, pid)
	if err != nil {
		h.logger.Error(ctx, "failed to fetch continue watching", "profile_id", pid, "error", err)
		items = []models.EnrichedTitle{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		h.logger.Debug(ctx, "discarding stale continue watching", "profile_id", pid)
		return cloneTitles(h.items)
	}
	h.items = items
	return cloneTitles(items)
}

func (h *ContinueWatching) Items() []models.EnrichedTitle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneTitles(h.items)
}

// Dismiss removes a title from the projection at once, then deletes it
// remotely. When the delete fails the projection is refetched from the
// store and nil is returned: the refetch is the recovery.
func (h *ContinueWatching) Dismiss(ctx context.Context, externalID string) error {
	h.mu.Lock()
	pid := h.profileID
	if pid == 0 {
		h.mu.Unlock()
		return common.ErrNoProfile
	}
	h.gen++
	if i := indexOf(h.items, externalID); i >= 0 {
		h.items = append(h.items[:i:i], h.items[i+1:]...)
	}
	h.mu.Unlock()

	if err := h.RemoveFromContinueWatching(ctx, pid, externalID); err != nil {
		h.logger.Error(ctx, "failed to dismiss from continue watching", "profile_id", pid, "external_id", externalID, "error", err)
		h.Refresh(ctx)
	}
	return nil
}
