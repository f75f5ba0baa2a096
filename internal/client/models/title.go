package models

import (
	"strconv"
	"time"
)

type MediaKind string

const (
	Movie MediaKind = "movie"
	TV    MediaKind = "tv"
)

// CatalogTitle is one list item returned by the catalog gateway.
type CatalogTitle struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path"`
	BackdropPath string    `json:"backdrop_path"`
	VoteAverage  float64   `json:"vote_average"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
	MediaType    MediaKind `json:"media_type,omitempty"`
}

// DisplayTitle returns the movie title or, for series, the show name.
func (c CatalogTitle) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// Kind is the explicit media type, or movie when the item carries a movie
// title and tv otherwise.
func (c CatalogTitle) Kind() MediaKind {
	if c.MediaType != "" {
		return c.MediaType
	}
	if c.Title != "" {
		return Movie
	}
	return TV
}

func (c CatalogTitle) ExternalID() string {
	return strconv.FormatInt(c.ID, 10)
}

// Year parses the leading year of the release or first-air date; 0 if unknown.
func (c CatalogTitle) Year() int {
	date := c.ReleaseDate
	if date == "" {
		date = c.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ExternalIDs struct {
	IMDbID string `json:"imdb_id"`
}

// TitleDetails is the catalog details response, including cross-reference ids.
type TitleDetails struct {
	CatalogTitle
	Genres      []Genre     `json:"genres"`
	Runtime     int         `json:"runtime,omitempty"`
	Seasons     int         `json:"number_of_seasons,omitempty"`
	ExternalIDs ExternalIDs `json:"external_ids"`
}

// Title is a backend title row, materialized the first time a profile
// references a catalog item.
type Title struct {
	ID          int64
	TMDBID      string
	IMDbID      string
	Title       string
	Description string
	PosterURL   string
	BackdropURL string
	ReleaseYear int
	Rating      float64
	Type        MediaKind
}

type WatchlistEntry struct {
	ID        int64
	ProfileID int64
	TitleID   int64
	AddedAt   time.Time
}

type HistoryEntry struct {
	ID          int64
	ProfileID   int64
	TitleID     int64
	LastWatched time.Time
}

// WatchlistRow is a watchlist entry joined with its title.
type WatchlistRow struct {
	ID      int64
	AddedAt time.Time
	Title   Title
}

// HistoryRow is a history entry joined with its title.
type HistoryRow struct {
	ID          int64
	LastWatched time.Time
	Title       Title
}

// EnrichedTitle is the one shape in which watchlist and continue-watching
// rows are handed to callers. At is added_at or last_watched.
type EnrichedTitle struct {
	EntryID      int64
	TitleID      int64
	ExternalID   string
	IMDbID       string
	Title        string
	Description  string
	PosterPath   string
	BackdropPath string
	ReleaseYear  int
	Rating       float64
	Kind         MediaKind
	At           time.Time
}

// CatalogTitle rebuilds the catalog item so a projection row can be played
// or toggled like any list item.
func (e EnrichedTitle) CatalogTitle() CatalogTitle {
	id, _ := strconv.ParseInt(e.ExternalID, 10, 64)
	c := CatalogTitle{
		ID:           id,
		Overview:     e.Description,
		PosterPath:   e.PosterPath,
		BackdropPath: e.BackdropPath,
		VoteAverage:  e.Rating,
		MediaType:    e.Kind,
	}
	if e.Kind == TV {
		c.Name = e.Title
	} else {
		c.Title = e.Title
	}
	if e.ReleaseYear > 0 {
		year := strconv.Itoa(e.ReleaseYear)
		if e.Kind == TV {
			c.FirstAirDate = year
		} else {
			c.ReleaseDate = year
		}
	}
	return c
}
