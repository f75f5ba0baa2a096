package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/client"
	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var errBoom = errors.New("boom")

// ---- helpers ----

func setupMeta(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

func hasKey(t *testing.T, meta metadata.Repository, key string) bool {
	t.Helper()
	_, err := meta.Get(context.Background(), key)
	if errors.Is(err, common.ErrorNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

func movie(id int64, title string) models.CatalogTitle {
	return models.CatalogTitle{ID: id, Title: title, Overview: "o", PosterPath: "/p.jpg", ReleaseDate: "1999-10-15", VoteAverage: 8.4}
}

// ---- fake backend ----

// fakeBackend is an in-memory client.Client: auth plus the four tables.
type fakeBackend struct {
	mu sync.Mutex

	errs  map[string]error
	hooks map[string]func()
	calls map[string]int

	clock  time.Time
	nextID int64

	user         *models.User
	refreshToken string
	lastRestore  string
	lastPassword string

	profiles  []models.Profile
	titles    map[string]models.Title
	watchlist []models.WatchlistEntry
	history   []models.HistoryEntry
}

var _ client.Client = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		errs:   map[string]error{},
		hooks:  map[string]func(){},
		calls:  map[string]int{},
		clock:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		user:   &models.User{ID: "u1", Email: "alice@example.com"},
		titles: map[string]models.Title{},
	}
}

// enter counts the call, runs its hook outside the lock and returns the
// injected error, if any.
func (f *fakeBackend) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	hook := f.hooks[method]
	err := f.errs[method]
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return err
}

func (f *fakeBackend) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeBackend) setErr(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
}

func (f *fakeBackend) setHook(method string, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[method] = fn
}

func (f *fakeBackend) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeBackend) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) addProfile(name string) models.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Profile{ID: f.id(), UserID: f.user.ID, Name: name, Color: common.DefaultProfileColor, CreatedAt: f.tick()}
	f.profiles = append(f.profiles, p)
	return p
}

func (f *fakeBackend) watchlistCount(profileID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.watchlist {
		if e.ProfileID == profileID {
			n++
		}
	}
	return n
}

func (f *fakeBackend) historyEntries(profileID int64) []models.HistoryEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.HistoryEntry
	for _, e := range f.history {
		if e.ProfileID == profileID {
			out = append(out, e)
		}
	}
	return out
}

// Auth

func (f *fakeBackend) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if err := f.enter("SignUp"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = &models.User{ID: "u-new", Email: email}
	f.refreshToken = "R-signup"
	return f.user, nil
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	if err := f.enter("SignIn"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshToken = "R1"
	u := *f.user
	return &u, nil
}

func (f *fakeBackend) Restore(ctx context.Context, refreshToken string) (*models.User, error) {
	f.mu.Lock()
	f.lastRestore = refreshToken
	f.mu.Unlock()
	if err := f.enter("Restore"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshToken = "R2"
	u := *f.user
	return &u, nil
}

func (f *fakeBackend) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.refreshToken = ""
	f.mu.Unlock()
	return f.enter("SignOut")
}

func (f *fakeBackend) ChangePassword(ctx context.Context, password string) error {
	f.mu.Lock()
	f.lastPassword = password
	f.mu.Unlock()
	return f.enter("ChangePassword")
}

func (f *fakeBackend) DeleteAccount(ctx context.Context) error {
	return f.enter("DeleteAccount")
}

func (f *fakeBackend) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshToken
}

func (f *fakeBackend) Ping(ctx context.Context) error { return f.enter("Ping") }
func (f *fakeBackend) Close() error                   { return nil }

// Profiles

func (f *fakeBackend) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	if err := f.enter("ListProfiles"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Profile(nil), f.profiles...), nil
}

func (f *fakeBackend) CreateProfile(ctx context.Context, name, color string) (*models.Profile, error) {
	if err := f.enter("CreateProfile"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Profile{ID: f.id(), UserID: f.user.ID, Name: name, Color: color, CreatedAt: f.tick()}
	f.profiles = append(f.profiles, p)
	return &p, nil
}

func (f *fakeBackend) UpdateProfile(ctx context.Context, id int64, name, color string) error {
	if err := f.enter("UpdateProfile"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			f.profiles[i].Name = name
			f.profiles[i].Color = color
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeBackend) DeleteProfile(ctx context.Context, id int64) error {
	if err := f.enter("DeleteProfile"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			f.watchlist = dropProfile(f.watchlist, id, func(e models.WatchlistEntry) int64 { return e.ProfileID })
			f.history = dropProfile(f.history, id, func(e models.HistoryEntry) int64 { return e.ProfileID })
			return nil
		}
	}
	return common.ErrorNotFound
}

func dropProfile[T any](in []T, profileID int64, pid func(T) int64) []T {
	out := in[:0]
	for _, e := range in {
		if pid(e) != profileID {
			out = append(out, e)
		}
	}
	return out
}

// Titles

func (f *fakeBackend) FindTitle(ctx context.Context, externalID string) (*models.Title, error) {
	if err := f.enter("FindTitle"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.titles[externalID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (f *fakeBackend) CreateTitle(ctx context.Context, t *models.Title) (*models.Title, error) {
	if err := f.enter("CreateTitle"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.titles[t.TMDBID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	row := *t
	row.ID = f.id()
	f.titles[t.TMDBID] = row
	return &row, nil
}

func (f *fakeBackend) titleByID(id int64) models.Title {
	for _, t := range f.titles {
		if t.ID == id {
			return t
		}
	}
	return models.Title{}
}

// Watchlist

func (f *fakeBackend) FindWatchlistEntry(ctx context.Context, profileID, titleID int64) (*models.WatchlistEntry, error) {
	if err := f.enter("FindWatchlistEntry"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.watchlist {
		if e.ProfileID == profileID && e.TitleID == titleID {
			return &e, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeBackend) InsertWatchlistEntry(ctx context.Context, profileID, titleID int64) error {
	if err := f.enter("InsertWatchlistEntry"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.watchlist {
		if e.ProfileID == profileID && e.TitleID == titleID {
			return common.ErrorAlreadyExists
		}
	}
	f.watchlist = append(f.watchlist, models.WatchlistEntry{ID: f.id(), ProfileID: profileID, TitleID: titleID, AddedAt: f.tick()})
	return nil
}

func (f *fakeBackend) DeleteWatchlistEntry(ctx context.Context, profileID, titleID int64) error {
	if err := f.enter("DeleteWatchlistEntry"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.watchlist {
		if e.ProfileID == profileID && e.TitleID == titleID {
			f.watchlist = append(f.watchlist[:i], f.watchlist[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeBackend) ListWatchlist(ctx context.Context, profileID int64) ([]models.WatchlistRow, error) {
	if err := f.enter("ListWatchlist"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.WatchlistRow
	for _, e := range f.watchlist {
		if e.ProfileID == profileID {
			rows = append(rows, models.WatchlistRow{ID: e.ID, AddedAt: e.AddedAt, Title: f.titleByID(e.TitleID)})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AddedAt.After(rows[j].AddedAt) })
	return rows, nil
}

// History

func (f *fakeBackend) FindHistoryEntry(ctx context.Context, profileID, titleID int64) (*models.HistoryEntry, error) {
	if err := f.enter("FindHistoryEntry"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.history {
		if e.ProfileID == profileID && e.TitleID == titleID {
			return &e, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeBackend) InsertHistoryEntry(ctx context.Context, profileID, titleID int64, at time.Time) error {
	if err := f.enter("InsertHistoryEntry"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.history {
		if e.ProfileID == profileID && e.TitleID == titleID {
			return common.ErrorAlreadyExists
		}
	}
	f.history = append(f.history, models.HistoryEntry{ID: f.id(), ProfileID: profileID, TitleID: titleID, LastWatched: at})
	return nil
}

func (f *fakeBackend) TouchHistoryEntry(ctx context.Context, profileID, id int64, at time.Time) error {
	if err := f.enter("TouchHistoryEntry"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.history {
		if f.history[i].ID == id && f.history[i].ProfileID == profileID {
			f.history[i].LastWatched = at
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeBackend) DeleteHistoryEntry(ctx context.Context, profileID, titleID int64) error {
	if err := f.enter("DeleteHistoryEntry"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.history {
		if e.ProfileID == profileID && e.TitleID == titleID {
			f.history = append(f.history[:i], f.history[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeBackend) ListHistory(ctx context.Context, profileID int64) ([]models.HistoryRow, error) {
	if err := f.enter("ListHistory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.HistoryRow
	for _, e := range f.history {
		if e.ProfileID == profileID {
			rows = append(rows, models.HistoryRow{ID: e.ID, LastWatched: e.LastWatched, Title: f.titleByID(e.TitleID)})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LastWatched.After(rows[j].LastWatched) })
	return rows, nil
}
