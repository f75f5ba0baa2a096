package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/logging"
)

type ProfileBackend interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, name, color string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, name, color string) error
	DeleteProfile(ctx context.Context, id int64) error
}

// ProfileListener observes current-profile changes; p is nil when no profile
// is selected.
type ProfileListener func(ctx context.Context, p *models.Profile)

// ProfileStore owns the signed-in user's profiles and the device-local
// current-profile selection.
type ProfileStore struct {
	store  ProfileBackend
	meta   metadata.Repository
	logger logging.Logger

	mu        sync.Mutex
	user      *models.User
	profiles  []models.Profile
	current   *models.Profile
	loading   bool
	gen       uint64
	listeners []ProfileListener
}

// NewProfileStore returns a store that reports loading until the first
// user change or settleSignedOut.
func NewProfileStore(store ProfileBackend, meta metadata.Repository, logger logging.Logger) *ProfileStore {
	return &ProfileStore{store: store, meta: meta, logger: logger, loading: true}
}

func (s *ProfileStore) Subscribe(fn ProfileListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *ProfileStore) Profiles() []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Profile(nil), s.profiles...)
}

func (s *ProfileStore) Current() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProfile(s.current)
}

func (s *ProfileStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// settleSignedOut ends the initial loading state when no user turned up.
func (s *ProfileStore) settleSignedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		s.loading = false
	}
}

func (s *ProfileStore) notify(ctx context.Context, ls []ProfileListener, p *models.Profile) {
	for _, fn := range ls {
		fn(ctx, cloneProfile(p))
	}
}

// OnUserChanged is the session listener: a user triggers a fetch, no user
// clears the list, the selection and every persisted pointer.
func (s *ProfileStore) OnUserChanged(ctx context.Context, u *models.User) {
	if u != nil {
		s.mu.Lock()
		s.user = &models.User{ID: u.ID, Email: u.Email}
		s.mu.Unlock()
		s.FetchProfiles(ctx)
		return
	}

	s.mu.Lock()
	s.gen++
	s.user = nil
	s.profiles = nil
	had := s.current != nil
	s.current = nil
	s.loading = false
	ls := append([]ProfileListener(nil), s.listeners...)
	s.mu.Unlock()

	if err := s.meta.DeletePrefix(ctx, currentProfilePrefix); err != nil {
		s.logger.Error(ctx, "failed to clear current profile pointer", "error", err)
	}
	if had {
		s.notify(ctx, ls, nil)
	}
}

// FetchProfiles reloads the list in creation order and restores the current
// profile from the persisted pointer, falling back to the first profile.
// Failures are logged and leave the list empty.
func (s *ProfileStore) FetchProfiles(ctx context.Context) []models.Profile {
	s.mu.Lock()
	user := s.user
	if user == nil {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	list, err := s.store.ListProfiles(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to fetch profiles", "user_id", user.ID, "error", err)
		list = nil
	} else if len(list) == 0 {
		list = s.createDefault(ctx, user)
	}
	sortProfiles(list)

	pick := s.restore(ctx, user.ID, list)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug(ctx, "discarding stale profile list", "user_id", user.ID)
		return list
	}
	s.loading = false
	s.profiles = list
	prev := s.current
	s.current = cloneProfile(pick)
	ls := append([]ProfileListener(nil), s.listeners...)
	s.mu.Unlock()

	if pick != nil {
		s.persist(ctx, user.ID, *pick)
	}
	if !sameProfile(prev, pick) {
		s.notify(ctx, ls, pick)
	}
	return append([]models.Profile(nil), list...)
}

func (s *ProfileStore) createDefault(ctx context.Context, user *models.User) []models.Profile {
	p, err := s.store.CreateProfile(ctx, defaultProfileName(user.Email), common.DefaultProfileColor)
	if err != nil {
		s.logger.Error(ctx, "failed to create default profile", "user_id", user.ID, "error", err)
		return nil
	}
	s.logger.Info(ctx, "created default profile", "user_id", user.ID, "profile_id", p.ID)
	return []models.Profile{*p}
}

// defaultProfileName is the email local part, cut to the name limit; a part
// too short to be a valid name becomes "User".
func defaultProfileName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	name := []rune(strings.TrimSpace(local))
	if len(name) > common.MaxProfileNameLength {
		name = name[:common.MaxProfileNameLength]
	}
	if len(name) < common.MinProfileNameLength {
		return "User"
	}
	return string(name)
}

func sortProfiles(list []models.Profile) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func (s *ProfileStore) restore(ctx context.Context, userID string, list []models.Profile) *models.Profile {
	if len(list) == 0 {
		return nil
	}

	raw, err := s.meta.Get(ctx, currentProfileKey(userID))
	switch {
	case err == nil:
		var sp models.StoredProfile
		if err := json.Unmarshal(raw, &sp); err != nil {
			s.logger.Warn(ctx, "ignoring malformed current profile pointer", "error", err)
			break
		}
		for i := range list {
			if list[i].ID == sp.ID {
				return &list[i]
			}
		}
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "failed to read current profile pointer", "error", err)
	}

	return &list[0]
}

func (s *ProfileStore) persist(ctx context.Context, userID string, p models.Profile) {
	b, err := json.Marshal(p.Stored())
	if err != nil {
		s.logger.Error(ctx, "failed to encode current profile pointer", "error", err)
		return
	}
	if err := s.meta.Set(ctx, currentProfileKey(userID), b); err != nil {
		s.logger.Error(ctx, "failed to persist current profile pointer", "error", err)
	}
}

func (s *ProfileStore) forget(ctx context.Context, userID string) {
	if err := s.meta.Delete(ctx, currentProfileKey(userID)); err != nil {
		s.logger.Error(ctx, "failed to clear current profile pointer", "error", err)
	}
}

// SwitchProfile selects a fetched profile by id and persists the pointer.
// No remote call.
func (s *ProfileStore) SwitchProfile(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return common.ErrNoSession
	}
	var pick *models.Profile
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			pick = cloneProfile(&s.profiles[i])
			break
		}
	}
	if pick == nil {
		s.mu.Unlock()
		return common.ErrorNotFound
	}
	s.gen++
	s.loading = false
	s.current = pick
	userID := s.user.ID
	ls := append([]ProfileListener(nil), s.listeners...)
	s.mu.Unlock()

	s.persist(ctx, userID, *pick)
	s.notify(ctx, ls, pick)
	return nil
}

func (s *ProfileStore) AddProfile(ctx context.Context, name, color string) error {
	name, err := common.ValidateProfile(name, color)
	if err != nil {
		return err
	}

	s.mu.Lock()
	signedIn := s.user != nil
	n := len(s.profiles)
	s.mu.Unlock()

	if !signedIn {
		return common.ErrNoSession
	}
	if n >= common.MaxProfiles {
		return &common.ValidationError{Field: "profiles", Reason: "at most 5 profiles per account"}
	}

	if _, err := s.store.CreateProfile(ctx, name, color); err != nil {
		return &common.RemoteError{Op: "add profile", Err: err}
	}

	s.FetchProfiles(ctx)
	return nil
}

// UpdateProfile edits a profile. When it is the current one the selection
// and pointer change right away, ahead of the refresh.
func (s *ProfileStore) UpdateProfile(ctx context.Context, id int64, name, color string) error {
	name, err := common.ValidateProfile(name, color)
	if err != nil {
		return err
	}
	s.mu.Lock()
	signedIn := s.user != nil
	s.mu.Unlock()
	if !signedIn {
		return common.ErrNoSession
	}

	if err := s.store.UpdateProfile(ctx, id, name, color); err != nil {
		return &common.RemoteError{Op: "update profile", Err: err}
	}

	s.mu.Lock()
	var updated *models.Profile
	var userID string
	if s.current != nil && s.current.ID == id && s.user != nil {
		s.current.Name = name
		s.current.Color = color
		updated = cloneProfile(s.current)
		userID = s.user.ID
	}
	s.mu.Unlock()

	if updated != nil {
		s.persist(ctx, userID, *updated)
	}

	s.FetchProfiles(ctx)
	return nil
}

// DeleteProfile deletes a profile. If it is current, the replacement (first
// remaining by creation order, or none) is selected before the remote call.
func (s *ProfileStore) DeleteProfile(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return common.ErrNoSession
	}
	userID := s.user.ID
	wasCurrent := s.current != nil && s.current.ID == id
	var replacement *models.Profile
	if wasCurrent {
		for i := range s.profiles {
			if s.profiles[i].ID != id {
				replacement = cloneProfile(&s.profiles[i])
				break
			}
		}
		s.gen++
		s.current = replacement
	}
	ls := append([]ProfileListener(nil), s.listeners...)
	s.mu.Unlock()

	if wasCurrent {
		if replacement != nil {
			s.persist(ctx, userID, *replacement)
		} else {
			s.forget(ctx, userID)
		}
		s.notify(ctx, ls, replacement)
	}

	if err := s.store.DeleteProfile(ctx, id); err != nil {
		return &common.RemoteError{Op: "delete profile", Err: err}
	}

	s.FetchProfiles(ctx)
	return nil
}
