package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/dbx"
	"github.com/dmitrijs2005/notflix/internal/logging"
	"github.com/dmitrijs2005/notflix/internal/server/events"
	"github.com/dmitrijs2005/notflix/internal/server/models"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/repomanager"
)

// StoreService serves profile, title, watchlist and history rows. Every
// profile-scoped call first checks that the profile belongs to the calling
// user; a foreign profile is reported as common.ErrorNotFound.
type StoreService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   events.Publisher
	logger      logging.Logger
}

func NewStoreService(db *sql.DB, m repomanager.RepositoryManager, p events.Publisher, l logging.Logger) *StoreService {
	return &StoreService{db: db, repomanager: m, publisher: p, logger: l}
}

func (s *StoreService) ListProfiles(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.repomanager.Profiles(s.db).List(ctx, userID)
}

func (s *StoreService) CreateProfile(ctx context.Context, userID, name, color string) (*models.Profile, error) {
	name, err := common.ValidateProfile(name, color)
	if err != nil {
		return nil, err
	}

	var created *models.Profile

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Profiles(tx)

		// Concurrent creates for one account queue here, so the count
		// below cannot be stale at insert time.
		if err := repo.LockOwner(ctx, userID); err != nil {
			return err
		}

		n, err := repo.Count(ctx, userID)
		if err != nil {
			return err
		}
		if n >= common.MaxProfiles {
			return &common.ValidationError{Field: "profiles", Reason: fmt.Sprintf("at most %d profiles per account", common.MaxProfiles)}
		}

		created, err = repo.Create(ctx, &models.Profile{UserID: userID, Name: name, Color: color})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *StoreService) UpdateProfile(ctx context.Context, userID string, id int64, name, color string) error {
	name, err := common.ValidateProfile(name, color)
	if err != nil {
		return err
	}
	return s.repomanager.Profiles(s.db).Update(ctx, userID, id, name, color)
}

func (s *StoreService) DeleteProfile(ctx context.Context, userID string, id int64) error {
	if err := s.repomanager.Profiles(s.db).Delete(ctx, userID, id); err != nil {
		return err
	}

	e := events.New(events.ProfileDeleted, userID)
	e.ProfileID = id
	s.publish(ctx, e)
	return nil
}

func (s *StoreService) FindTitle(ctx context.Context, tmdbID string) (*models.Title, error) {
	if strings.TrimSpace(tmdbID) == "" {
		return nil, &common.ValidationError{Field: "tmdb_id", Reason: "must not be empty"}
	}
	return s.repomanager.Titles(s.db).FindByExternalID(ctx, tmdbID)
}

func (s *StoreService) CreateTitle(ctx context.Context, t *models.Title) (*models.Title, error) {
	if strings.TrimSpace(t.TMDBID) == "" {
		return nil, &common.ValidationError{Field: "tmdb_id", Reason: "must not be empty"}
	}
	if t.Type != "movie" && t.Type != "tv" {
		return nil, &common.ValidationError{Field: "type", Reason: "must be movie or tv"}
	}
	return s.repomanager.Titles(s.db).Create(ctx, t)
}

func (s *StoreService) FindWatchlistEntry(ctx context.Context, userID string, profileID, titleID int64) (*models.WatchlistEntry, error) {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.repomanager.Watchlist(s.db).Find(ctx, profileID, titleID)
}

func (s *StoreService) InsertWatchlistEntry(ctx context.Context, userID string, profileID, titleID int64) (*models.WatchlistEntry, error) {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.repomanager.Watchlist(s.db).Insert(ctx, profileID, titleID)
}

func (s *StoreService) DeleteWatchlistEntry(ctx context.Context, userID string, profileID, titleID int64) error {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return err
	}
	return s.repomanager.Watchlist(s.db).Delete(ctx, profileID, titleID)
}

func (s *StoreService) ListWatchlist(ctx context.Context, userID string, profileID int64) ([]models.WatchlistRow, error) {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.repomanager.Watchlist(s.db).List(ctx, profileID)
}

func (s *StoreService) FindHistoryEntry(ctx context.Context, userID string, profileID, titleID int64) (*models.HistoryEntry, error) {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.repomanager.History(s.db).Find(ctx, profileID, titleID)
}

func (s *StoreService) InsertHistoryEntry(ctx context.Context, userID string, profileID, titleID int64, at time.Time) (*models.HistoryEntry, error) {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}

	entry, err := s.repomanager.History(s.db).Insert(ctx, profileID, titleID, at)
	if err != nil {
		return nil, err
	}

	s.publishWatch(ctx, userID, profileID, titleID)
	return entry, nil
}

func (s *StoreService) TouchHistoryEntry(ctx context.Context, userID string, profileID, id int64, at time.Time) error {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return err
	}

	if err := s.repomanager.History(s.db).Touch(ctx, profileID, id, at); err != nil {
		return err
	}

	s.publishWatch(ctx, userID, profileID, 0)
	return nil
}

func (s *StoreService) DeleteHistoryEntry(ctx context.Context, userID string, profileID, titleID int64) error {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return err
	}
	return s.repomanager.History(s.db).Delete(ctx, profileID, titleID)
}

func (s *StoreService) ListHistory(ctx context.Context, userID string, profileID int64) ([]models.HistoryRow, error) {
	if err := s.ownProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.repomanager.History(s.db).List(ctx, profileID)
}

func (s *StoreService) ownProfile(ctx context.Context, userID string, profileID int64) error {
	_, err := s.repomanager.Profiles(s.db).Get(ctx, userID, profileID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error checking profile: %w", err)
	}
	return err
}

func (s *StoreService) publishWatch(ctx context.Context, userID string, profileID, titleID int64) {
	e := events.New(events.WatchStarted, userID)
	e.ProfileID = profileID
	e.TitleID = titleID
	s.publish(ctx, e)
}

func (s *StoreService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn(ctx, "failed to publish event", "type", e.Type, "error", err)
	}
}
