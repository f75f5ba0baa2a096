package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImages(t *testing.T) {
	img := NewImages("")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"poster default size", img.PosterURL("/a.jpg", ""), "https://image.tmdb.org/t/p/w342/a.jpg"},
		{"poster w500", img.PosterURL("/a.jpg", PosterW500), "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"poster empty path", img.PosterURL("", PosterOriginal), PlaceholderImage},
		{"backdrop default size", img.BackdropURL("/b.jpg", ""), "https://image.tmdb.org/t/p/w1280/b.jpg"},
		{"backdrop w780", img.BackdropURL("/b.jpg", BackdropW780), "https://image.tmdb.org/t/p/w780/b.jpg"},
		{"backdrop empty path", img.BackdropURL("", ""), "/placeholder.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
