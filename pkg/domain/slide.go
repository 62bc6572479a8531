package domain

import (
	"fmt"
	"net/url"
)

// SlideKind discriminates the Slide variants.
type SlideKind string

const (
	SlideVideo SlideKind = "video"
	SlideImage SlideKind = "image"
	SlideText  SlideKind = "text"
)

// Slide is a tagged variant: only the fields of its Kind are meaningful.
type Slide struct {
	Kind SlideKind `json:"kind" yaml:"kind"`

	// Video
	MediaID   string `json:"media_id,omitempty" yaml:"media_id,omitempty"`
	Hash      string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`

	// Image (Src) and Video/Image (Alt)
	Src string `json:"src,omitempty" yaml:"src,omitempty"`
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`

	// Text
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Body  string `json:"body,omitempty" yaml:"body,omitempty"`
}

// IsMedia reports whether the slide hosts playable media.
func (s Slide) IsMedia() bool {
	return s.Kind == SlideVideo
}

// EmbedURL returns the player URL for a video slide, or "" for other kinds.
// Autoplay is left off so the slide stays paused until the visitor starts it.
func (s Slide) EmbedURL() string {
	if s.Kind != SlideVideo || s.MediaID == "" {
		return ""
	}
	q := url.Values{}
	if s.Hash != "" {
		q.Set("h", s.Hash)
	}
	q.Set("muted", "1")
	q.Set("loop", "1")
	return fmt.Sprintf("https://player.vimeo.com/video/%s?%s", url.PathEscape(s.MediaID), q.Encode())
}

// Validate checks that the fields required by the slide kind are present.
func (s Slide) Validate() error {
	switch s.Kind {
	case SlideVideo:
		if s.MediaID == "" {
			return fmt.Errorf("video slide missing media_id")
		}
	case SlideImage:
		if s.Src == "" {
			return fmt.Errorf("image slide missing src")
		}
	case SlideText:
		if s.Title == "" && s.Body == "" {
			return fmt.Errorf("text slide missing title and body")
		}
	default:
		return fmt.Errorf("unknown slide kind %q", s.Kind)
	}
	return nil
}
