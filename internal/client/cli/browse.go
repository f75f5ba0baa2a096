package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notflix/internal/client/catalog"
	"github.com/dmitrijs2005/notflix/internal/client/models"
)

const titleUsage = "<tmdb id> [movie|tv]"

func shelvesFor(args []string) ([]catalog.Shelf, error) {
	if len(args) == 0 {
		return catalog.HomeShelves(), nil
	}
	switch args[0] {
	case "movies":
		return catalog.MovieShelves(), nil
	case "series", "tv":
		return catalog.SeriesShelves(), nil
	case "new":
		return catalog.NewPopularShelves(), nil
	default:
		return nil, usageError("home [movies|series|new]")
	}
}

func (a *App) Home(ctx context.Context, args []string) error {
	shelves, err := shelvesFor(args)
	if err != nil {
		return err
	}
	v, err := a.state.Home(ctx, shelves)
	if err != nil {
		return err
	}

	if len(v.ContinueWatching) > 0 {
		a.printEnriched("Continue Watching", v.ContinueWatching)
	}
	if len(v.Watchlist) > 0 {
		a.printEnriched("My List", v.Watchlist)
	}
	for _, r := range v.Rows {
		a.remember(r.Items)
		a.printRow(r.Shelf.Label, r.Items)
	}
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		return usageError("search <query>")
	}
	items, err := a.state.Search(ctx, q)
	if err != nil {
		return err
	}
	a.remember(items)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing found")
		return nil
	}
	a.printRow("Results for "+strconv.Quote(q), items)
	return nil
}

func (a *App) MyList(ctx context.Context) error {
	items := a.state.Watchlist.Refresh(ctx)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your list is empty")
		return nil
	}
	a.printEnriched("My List", items)
	return nil
}

func (a *App) ContinueWatching(ctx context.Context) error {
	items := a.state.History.Refresh(ctx)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing to continue")
		return nil
	}
	a.printEnriched("Continue Watching", items)
	return nil
}

// ToggleList adds or removes a title from the current profile's list.
func (a *App) ToggleList(ctx context.Context, args []string) error {
	t, err := a.resolve(ctx, args, "list "+titleUsage)
	if err != nil {
		return err
	}
	added, err := a.state.ToggleWatchlist(ctx, t)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(a.out, "Added %s to My List\n", t.DisplayTitle())
	} else {
		fmt.Fprintf(a.out, "Removed %s from My List\n", t.DisplayTitle())
	}
	return nil
}

func (a *App) Play(ctx context.Context, args []string) error {
	t, err := a.resolve(ctx, args, "play "+titleUsage)
	if err != nil {
		return err
	}
	loc := a.state.Play(ctx, t)
	a.playing = &loc
	fmt.Fprintf(a.out, "Now playing %s\n  %s\n", loc.Title, loc.URL)
	return nil
}

func (a *App) ClosePlayer(ctx context.Context) error {
	if a.playing == nil {
		fmt.Fprintln(a.out, "Nothing is playing")
		return nil
	}
	a.playing = nil
	a.state.ClosePlayer(ctx)
	fmt.Fprintln(a.out, "Player closed")
	return nil
}

func (a *App) Dismiss(ctx context.Context, args []string) error {
	id, err := parseID(args, "dismiss <tmdb id>")
	if err != nil {
		return err
	}
	if err := a.state.DismissContinueWatching(ctx, strconv.FormatInt(id, 10)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed from Continue Watching")
	return nil
}

// resolve finds the catalog item named by args: one already shown, a
// projection row, or a fresh details lookup.
func (a *App) resolve(ctx context.Context, args []string, usage string) (models.CatalogTitle, error) {
	id, err := parseID(args, usage)
	if err != nil {
		return models.CatalogTitle{}, err
	}
	kind, err := parseKind(args, usage)
	if err != nil {
		return models.CatalogTitle{}, err
	}

	ext := strconv.FormatInt(id, 10)
	if t, ok := a.seen[ext]; ok && (kind == "" || t.Kind() == kind) {
		return t, nil
	}
	for _, e := range append(a.state.Watchlist.Items(), a.state.History.Items()...) {
		if e.ExternalID == ext && (kind == "" || e.Kind == kind) {
			return e.CatalogTitle(), nil
		}
	}

	if kind == "" {
		kind = models.Movie
	}
	d, err := a.state.Title(ctx, id, kind)
	if err != nil {
		return models.CatalogTitle{}, err
	}
	t := d.CatalogTitle
	t.MediaType = kind
	a.remember([]models.CatalogTitle{t})
	return t, nil
}

func (a *App) printRow(label string, items []models.CatalogTitle) {
	fmt.Fprintf(a.out, "== %s ==\n", label)
	for _, it := range items {
		fmt.Fprintf(a.out, "  %-8s %s%s\t%s\t%.1f\t%s\n",
			it.ExternalID(), it.DisplayTitle(), yearSuffix(it.Year()), it.Kind(), it.VoteAverage,
			a.images.PosterURL(it.PosterPath, catalog.PosterW185))
	}
}

func (a *App) printEnriched(label string, items []models.EnrichedTitle) {
	fmt.Fprintf(a.out, "== %s ==\n", label)
	for _, it := range items {
		fmt.Fprintf(a.out, "  %-8s %s%s\t%s\t%s\n",
			it.ExternalID, it.Title, yearSuffix(it.ReleaseYear), it.Kind, it.At.Local().Format("2006-01-02 15:04"))
	}
}

func yearSuffix(y int) string {
	if y == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d)", y)
}
