package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGifKeepsProvidedFields(t *testing.T) {
	g := NewGif("abc", "Dancing Cat", "https://media.example/abc-small.gif",
		"https://example.com/abc")

	assert.Equal(t, "abc", g.ID)
	assert.Equal(t, "Dancing Cat", g.Title)
	assert.Equal(t, "https://media.example/abc-small.gif", g.PreviewURL)
	assert.Equal(t, "https://example.com/abc", g.Permalink)
}

func TestNewGifGeneratesIDWhenMissing(t *testing.T) {
	a := NewGif("", "One", "", "")
	b := NewGif("", "Two", "", "")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewGifUntitledFallback(t *testing.T) {
	g := NewGif("abc", "", "", "")
	assert.Equal(t, UntitledTitle, g.Title)
}
