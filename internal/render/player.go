// Package render builds the HTML playback page linked from chat replies.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
)

// MissingURLBody is served instead of the page when no media URL is given.
const MissingURLBody = "Missing video URL."

var (
	// ErrMissingURL indicates Render was called without a media URL.
	ErrMissingURL = errors.New("missing media url")
	// ErrInvalidURL indicates the media URL cannot be parsed or uses a scheme
	// other than http or https.
	ErrInvalidURL = errors.New("invalid media url")
)

//go:embed templates/player.html
var templateFS embed.FS

// Renderer renders the player page.
type Renderer struct {
	page *template.Template
}

// NewRenderer parses the embedded player template.
func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/player.html")
	if err != nil {
		return nil, fmt.Errorf("parse player template: %w", err)
	}
	return &Renderer{page: page}, nil
}

// MustNewRenderer is like NewRenderer but panics on a broken template.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

type pageData struct {
	MediaURL string
}

// Render returns the player page embedding mediaURL as the video source.
func (r *Renderer) Render(mediaURL string) ([]byte, error) {
	if mediaURL == "" {
		return nil, ErrMissingURL
	}
	if err := validateMediaURL(mediaURL); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, pageData{MediaURL: mediaURL}); err != nil {
		return nil, fmt.Errorf("render player page: %w", err)
	}
	return buf.Bytes(), nil
}

func validateMediaURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "", "http", "https":
		return nil
	default:
		return fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
}
