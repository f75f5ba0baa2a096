package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/notflix/internal/client/catalog"
	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/client/player"
	"github.com/dmitrijs2005/notflix/internal/client/services"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp builds an App with no backend behind it; only paths that stay
// local may be exercised.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &App{
		state:  services.NewApp(nil, nil, nil, nil, logging.Nop()),
		images: catalog.NewImages(""),
		logger: logging.Nop(),
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
		seen:   map[string]models.CatalogTitle{},
	}, &out
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	app := &App{logger: logging.New("info", "text", &buf)}
	ctx := context.Background()

	app.setMode(ctx, ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode())
	assert.Contains(t, buf.String(), "mode=online")

	buf.Reset()
	app.setMode(ctx, ModeOnline)
	assert.Empty(t, buf.String(), "no log when the mode does not change")

	app.setMode(ctx, ModeOffline)
	assert.Equal(t, ModeOffline, app.Mode())
	assert.Contains(t, buf.String(), "mode=offline")
}

type flakyPinger struct {
	mu  sync.Mutex
	err error
}

func (p *flakyPinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *flakyPinger) set(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	app := &App{logger: logging.Nop()}
	p := &flakyPinger{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, p, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, time.Millisecond)

	p.set(errors.New("down"))
	require.Eventually(t, func() bool { return app.Mode() == ModeOffline }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestGetStatus(t *testing.T) {
	app, _ := newTestApp(t, "")
	assert.Equal(t, "", app.getStatus())

	app.mode = ModeOffline
	assert.Equal(t, "(offline)", app.getStatus())
	assert.False(t, app.isLoggedIn())
}

func TestShelvesFor(t *testing.T) {
	s, err := shelvesFor(nil)
	require.NoError(t, err)
	assert.Len(t, s, len(catalog.HomeShelves()))

	s, err = shelvesFor([]string{"series"})
	require.NoError(t, err)
	assert.Len(t, s, len(catalog.SeriesShelves()))

	_, err = shelvesFor([]string{"sports"})
	require.Error(t, err)
}

func TestPrintRow(t *testing.T) {
	app, out := newTestApp(t, "")
	app.printRow("Trending Now", []models.CatalogTitle{
		{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4, PosterPath: "/f.jpg"},
		{ID: 1399, Name: "Game of Thrones"},
	})

	s := out.String()
	assert.Contains(t, s, "== Trending Now ==")
	assert.Contains(t, s, "Fight Club (1999)")
	assert.Contains(t, s, "https://image.tmdb.org/t/p/w185/f.jpg")
	assert.Contains(t, s, catalog.PlaceholderImage)
	assert.Contains(t, s, "\ttv\t")
}

func TestPickColor(t *testing.T) {
	orig := getSimpleText
	t.Cleanup(func() { getSimpleText = orig })

	answers := []string{"", "2", "bg-nope"}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	app, _ := newTestApp(t, "")

	c, err := app.pickColor(common.DefaultProfileColor)
	require.NoError(t, err)
	assert.Equal(t, common.DefaultProfileColor, c)

	c, err = app.pickColor(common.DefaultProfileColor)
	require.NoError(t, err)
	assert.Equal(t, "bg-blue-600", c)

	c, err = app.pickColor(common.DefaultProfileColor)
	require.NoError(t, err)
	assert.Equal(t, "bg-nope", c)
}

func TestLocalCommandPaths(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "no\n")

	require.NoError(t, app.ClosePlayer(ctx))
	assert.Contains(t, out.String(), "Nothing is playing")

	app.playing = &player.Locator{URL: "u", Title: "t"}
	require.NoError(t, app.ClosePlayer(ctx))
	assert.Nil(t, app.playing)

	require.Error(t, app.Search(ctx, nil))
	require.Error(t, app.Home(ctx, []string{"sports"}))
	require.Error(t, app.Play(ctx, []string{"x"}))
	require.ErrorIs(t, app.EditProfile(ctx, []string{"3"}), common.ErrorNotFound)
	require.ErrorIs(t, app.SwitchProfile(ctx, []string{"3"}), common.ErrNoSession)
	require.ErrorIs(t, app.Dismiss(ctx, []string{"3"}), common.ErrNoProfile)

	require.NoError(t, app.DeleteAccount(ctx))
	assert.Contains(t, out.String(), "Cancelled")
}

func TestResolve_UsesSeenItems(t *testing.T) {
	app, _ := newTestApp(t, "")
	app.remember([]models.CatalogTitle{{ID: 1399, Name: "Game of Thrones", MediaType: models.TV}})

	got, err := app.resolve(context.Background(), []string{"1399"}, "play <id>")
	require.NoError(t, err)
	assert.Equal(t, "Game of Thrones", got.DisplayTitle())

	got, err = app.resolve(context.Background(), []string{"1399", "tv"}, "play <id>")
	require.NoError(t, err)
	assert.Equal(t, models.TV, got.Kind())
}
