package catalog

const (
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	PlaceholderImage    = "/placeholder.png"
)

type PosterSize string

const (
	PosterW185     PosterSize = "w185"
	PosterW342     PosterSize = "w342"
	PosterW500     PosterSize = "w500"
	PosterOriginal PosterSize = "original"
)

type BackdropSize string

const (
	BackdropW780     BackdropSize = "w780"
	BackdropW1280    BackdropSize = "w1280"
	BackdropOriginal BackdropSize = "original"
)

// Images turns catalog image paths into absolute URLs.
type Images struct {
	BaseURL string
}

func NewImages(baseURL string) Images {
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	return Images{BaseURL: baseURL}
}

// PosterURL returns the poster URL at size, w342 when size is empty.
func (i Images) PosterURL(path string, size PosterSize) string {
	if size == "" {
		size = PosterW342
	}
	return i.url(path, string(size))
}

// BackdropURL returns the backdrop URL at size, w1280 when size is empty.
func (i Images) BackdropURL(path string, size BackdropSize) string {
	if size == "" {
		size = BackdropW1280
	}
	return i.url(path, string(size))
}

func (i Images) url(path, size string) string {
	if path == "" {
		return PlaceholderImage
	}
	return i.BaseURL + "/" + size + path
}
