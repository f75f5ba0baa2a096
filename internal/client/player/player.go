// Package player builds locators for the embeddable video player.
package player

import (
	"strings"

	"github.com/dmitrijs2005/notflix/internal/client/models"
)

const DefaultBaseURL = "https://hnembed.cc"

// Locator is what the presentation layer opens to start playback.
type Locator struct {
	URL   string
	Title string
}

type Embedder struct {
	baseURL string
}

func NewEmbedder(baseURL string) *Embedder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Embedder{baseURL: strings.TrimRight(baseURL, "/")}
}

// Embed prefers the IMDb id and falls back to the TMDB id. Anything that is
// not a series plays as a movie.
func (e *Embedder) Embed(kind models.MediaKind, tmdbID, imdbID, title string) Locator {
	id := imdbID
	if id == "" {
		id = tmdbID
	}
	if kind != models.TV {
		kind = models.Movie
	}
	return Locator{
		URL:   e.baseURL + "/embed/" + string(kind) + "/" + id,
		Title: title,
	}
}

// EmbedDetails is Embed for a details response.
func (e *Embedder) EmbedDetails(d *models.TitleDetails) Locator {
	return e.Embed(d.Kind(), d.ExternalID(), d.ExternalIDs.IMDbID, d.DisplayTitle())
}
