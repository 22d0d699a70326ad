package models

import (
	"github.com/google/uuid"
)

// UntitledTitle is shown for records the API returns without a title.
const UntitledTitle = "Untitled"

// Gif is the normalized display model for one search result. Immutable once
// created; a new fetch discards the whole deck rather than mutating items.
type Gif struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PreviewURL  string `json:"preview_url"`
	OriginalURL string `json:"original_url"`
	Permalink   string `json:"permalink"`
	Rating      string `json:"rating,omitempty"`
	Source      string `json:"source"` // name of the provider that produced it
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// NewGif creates a Gif, assigning a unique ID when the API record has none and
// falling back to UntitledTitle for missing titles.
func NewGif(id, title, previewURL, permalink string) Gif {
	if id == "" {
		id = uuid.New().String()
	}
	if title == "" {
		title = UntitledTitle
	}
	return Gif{
		ID:         id,
		Title:      title,
		PreviewURL: previewURL,
		Permalink:  permalink,
	}
}
