package catalog

import (
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/notflix/internal/client/models"
)

// TMDB genre ids.
const (
	GenreAction         = 28
	GenreComedy         = 35
	GenreHorror         = 27
	GenreDrama          = 18
	GenreRomance        = 10749
	GenreScienceFiction = 878

	GenreActionAdventure = 10759
	GenreSciFiFantasy    = 10765
)

// networkNetflix is the TMDB network id used for the originals shelf.
const networkNetflix = 213

// Shelf is one labelled catalog request.
type Shelf struct {
	Label  string
	Path   string
	Params url.Values
	Kind   models.MediaKind
}

func Trending() Shelf {
	return Shelf{Label: "Trending Now", Path: "/trending/all/week"}
}

func PopularMovies() Shelf {
	return Shelf{Label: "Popular Movies", Path: "/movie/popular", Kind: models.Movie}
}

func PopularTV() Shelf {
	return Shelf{Label: "Popular TV Shows", Path: "/tv/popular", Kind: models.TV}
}

func TopRated() Shelf {
	return Shelf{Label: "Top Rated Movies", Path: "/movie/top_rated", Kind: models.Movie}
}

func Originals() Shelf {
	return Shelf{
		Label:  "Netflix Originals",
		Path:   "/discover/tv",
		Params: url.Values{"with_networks": {strconv.Itoa(networkNetflix)}},
		Kind:   models.TV,
	}
}

func Upcoming() Shelf {
	return Shelf{Label: "Upcoming Movies", Path: "/movie/upcoming", Kind: models.Movie}
}

func NowPlaying() Shelf {
	return Shelf{Label: "Now Playing in Theaters", Path: "/movie/now_playing", Kind: models.Movie}
}

func MoviesByGenre(label string, genre int) Shelf {
	return byGenre(label, "/discover/movie", genre, models.Movie)
}

func TVByGenre(label string, genre int) Shelf {
	return byGenre(label, "/discover/tv", genre, models.TV)
}

func byGenre(label, path string, genre int, kind models.MediaKind) Shelf {
	return Shelf{
		Label: label,
		Path:  path,
		Params: url.Values{
			"with_genres": {strconv.Itoa(genre)},
			"sort_by":     {"popularity.desc"},
		},
		Kind: kind,
	}
}

func movieGenres() []Shelf {
	return []Shelf{
		MoviesByGenre("Action Movies", GenreAction),
		MoviesByGenre("Comedy Movies", GenreComedy),
		MoviesByGenre("Horror Movies", GenreHorror),
		MoviesByGenre("Drama Movies", GenreDrama),
		MoviesByGenre("Romance Movies", GenreRomance),
		MoviesByGenre("Sci-Fi Movies", GenreScienceFiction),
	}
}

func tvGenres() []Shelf {
	return []Shelf{
		TVByGenre("Action & Adventure Shows", GenreActionAdventure),
		TVByGenre("Comedy Shows", GenreComedy),
		TVByGenre("Drama Shows", GenreDrama),
		TVByGenre("Sci-Fi & Fantasy Shows", GenreSciFiFantasy),
	}
}

// HomeShelves is the browse page set.
func HomeShelves() []Shelf {
	upcoming := Upcoming()
	upcoming.Label = "New Releases"

	out := []Shelf{Trending(), upcoming, NowPlaying(), Originals(), PopularMovies()}
	out = append(out, movieGenres()...)
	out = append(out, TopRated(), PopularTV())
	return append(out, tvGenres()...)
}

func MovieShelves() []Shelf {
	return append([]Shelf{PopularMovies(), TopRated()}, movieGenres()...)
}

func SeriesShelves() []Shelf {
	return append([]Shelf{Originals(), PopularTV()}, tvGenres()...)
}

func NewPopularShelves() []Shelf {
	return []Shelf{Trending(), Upcoming(), NowPlaying(), PopularTV()}
}
