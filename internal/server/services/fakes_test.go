package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/dbx"
	"github.com/dmitrijs2005/notflix/internal/server/events"
	"github.com/dmitrijs2005/notflix/internal/server/models"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/history"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/titles"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/users"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/watchlist"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memStore is an in-memory stand-in for every repository. Errors can be
// injected per operation through failOn.
type memStore struct {
	mu sync.Mutex

	users    map[string]*models.User
	tokens   map[string]*models.RefreshToken
	profiles []*models.Profile
	titles   []*models.Title
	wl       []*models.WatchlistEntry
	hist     []*models.HistoryEntry
	nextID   int64

	// trace records the order of profile-cap calls.
	trace  []string
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]*models.User{},
		tokens: map[string]*models.RefreshToken{},
		failOn: map[string]error{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) fail(op string) error {
	return m.failOn[op]
}

type memManager struct{ s *memStore }

func (m memManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m memManager) Users(dbx.DBTX) users.Repository                 { return memUsers{m.s} }
func (m memManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memTokens{m.s} }
func (m memManager) Profiles(dbx.DBTX) profiles.Repository           { return memProfiles{m.s} }
func (m memManager) Titles(dbx.DBTX) titles.Repository               { return memTitles{m.s} }
func (m memManager) Watchlist(dbx.DBTX) watchlist.Repository         { return memWatchlist{m.s} }
func (m memManager) History(dbx.DBTX) history.Repository             { return memHistory{m.s} }

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r memUsers) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	for k, tok := range r.s.tokens {
		if tok.UserID == id {
			delete(r.s.tokens, k)
		}
	}
	kept := r.s.profiles[:0]
	for _, p := range r.s.profiles {
		if p.UserID != id {
			kept = append(kept, p)
		}
	}
	r.s.profiles = kept
	return nil
}

type memTokens struct{ s *memStore }

func (r memTokens) Create(ctx context.Context, userID, token string, expires time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tokens.create"); err != nil {
		return err
	}
	r.s.tokens[token] = &models.RefreshToken{ID: r.s.id(), UserID: userID, Token: token, Expires: expires}
	return nil
}

func (r memTokens) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tokens.find"); err != nil {
		return nil, err
	}
	t, ok := r.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTokens) Delete(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tokens.delete"); err != nil {
		return err
	}
	delete(r.s.tokens, token)
	return nil
}

func (r memTokens) DeleteForUser(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, tok := range r.s.tokens {
		if tok.UserID == userID {
			delete(r.s.tokens, k)
		}
	}
	return nil
}

type memProfiles struct{ s *memStore }

func (r memProfiles) List(ctx context.Context, userID string) ([]models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Profile, 0)
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r memProfiles) LockOwner(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profiles.lock"); err != nil {
		return err
	}
	r.s.trace = append(r.s.trace, "lock "+userID)
	return nil
}

func (r memProfiles) Count(ctx context.Context, userID string) (int, error) {
	list, _ := r.List(ctx, userID)
	r.s.mu.Lock()
	r.s.trace = append(r.s.trace, "count "+userID)
	r.s.mu.Unlock()
	return len(list), nil
}

func (r memProfiles) Get(ctx context.Context, userID string, id int64) (*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profiles.get"); err != nil {
		return nil, err
	}
	for _, p := range r.s.profiles {
		if p.ID == id && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memProfiles) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	cp := *p
	r.s.profiles = append(r.s.profiles, &cp)
	return p, nil
}

func (r memProfiles) Update(ctx context.Context, userID string, id int64, name, color string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.ID == id && p.UserID == userID {
			p.Name, p.Color = name, color
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memProfiles) Delete(ctx context.Context, userID string, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.profiles {
		if p.ID == id && p.UserID == userID {
			r.s.profiles = append(r.s.profiles[:i], r.s.profiles[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memTitles struct{ s *memStore }

func (r memTitles) FindByExternalID(ctx context.Context, tmdbID string) (*models.Title, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.titles {
		if t.TMDBID == tmdbID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memTitles) Create(ctx context.Context, t *models.Title) (*models.Title, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.titles {
		if existing.TMDBID == t.TMDBID {
			return nil, common.ErrorAlreadyExists
		}
	}
	t.ID = r.s.id()
	cp := *t
	r.s.titles = append(r.s.titles, &cp)
	return t, nil
}

func (r memTitles) byID(id int64) models.Title {
	for _, t := range r.s.titles {
		if t.ID == id {
			return *t
		}
	}
	return models.Title{}
}

type memWatchlist struct{ s *memStore }

func (r memWatchlist) Find(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.wl {
		if e.ProfileID == profileID && e.TitleID == titleID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memWatchlist) Insert(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error) {
	if _, err := r.Find(ctx, profileID, titleID); err == nil {
		return nil, common.ErrorAlreadyExists
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := &models.WatchlistEntry{ID: r.s.id(), ProfileID: profileID, TitleID: titleID, AddedAt: time.Now()}
	r.s.wl = append(r.s.wl, e)
	cp := *e
	return &cp, nil
}

func (r memWatchlist) Delete(ctx context.Context, profileID, titleID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.wl {
		if e.ProfileID == profileID && e.TitleID == titleID {
			r.s.wl = append(r.s.wl[:i], r.s.wl[i+1:]...)
			break
		}
	}
	return nil
}

func (r memWatchlist) List(ctx context.Context, profileID int64) ([]models.WatchlistRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.WatchlistRow, 0)
	for _, e := range r.s.wl {
		if e.ProfileID == profileID {
			out = append(out, models.WatchlistRow{WatchlistEntry: *e, Title: memTitles{r.s}.byID(e.TitleID)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memHistory struct{ s *memStore }

func (r memHistory) Find(ctx context.Context, profileID, titleID int64) (*models.HistoryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.hist {
		if e.ProfileID == profileID && e.TitleID == titleID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memHistory) Insert(ctx context.Context, profileID, titleID int64, at time.Time) (*models.HistoryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := &models.HistoryEntry{ID: r.s.id(), ProfileID: profileID, TitleID: titleID, LastWatched: at}
	r.s.hist = append(r.s.hist, e)
	cp := *e
	return &cp, nil
}

func (r memHistory) Touch(ctx context.Context, profileID, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.hist {
		if e.ID == id && e.ProfileID == profileID {
			e.LastWatched = at
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memHistory) Delete(ctx context.Context, profileID, titleID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.hist {
		if e.ProfileID == profileID && e.TitleID == titleID {
			r.s.hist = append(r.s.hist[:i], r.s.hist[i+1:]...)
			break
		}
	}
	return nil
}

func (r memHistory) List(ctx context.Context, profileID int64) ([]models.HistoryRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.HistoryRow, 0)
	for _, e := range r.s.hist {
		if e.ProfileID == profileID {
			out = append(out, models.HistoryRow{HistoryEntry: *e, Title: memTitles{r.s}.byID(e.TitleID)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastWatched.After(out[j].LastWatched) })
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errBoom = errors.New("boom")
