package tenor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"giffer/config"
	"giffer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s := New(config.Config{TenorAPIKey: "tenor-key"})
	s.baseURL = server.URL
	return s
}

func TestBuildEndpoint(t *testing.T) {
	s := New(config.Config{TenorAPIKey: "tenor-key"})

	endpoint := s.BuildEndpoint("excited dog", 5)

	assert.Contains(t, endpoint, "key=tenor-key")
	assert.Contains(t, endpoint, "q=excited+dog")
	assert.Contains(t, endpoint, "limit=5")
	assert.True(t, s.Recognizes(endpoint))
}

func TestConfigured(t *testing.T) {
	assert.True(t, New(config.Config{TenorAPIKey: "k"}).Configured())
	assert.False(t, New(config.Config{}).Configured())
}

func TestFetchEndpointNormalizesResults(t *testing.T) {
	body := `{
		"results": [
			{
				"id": "t1",
				"title": "Excited Dog",
				"itemurl": "https://tenor.example/view/t1",
				"media": [
					{
						"gif": {"url": "https://media.tenor.example/t1.gif", "dims": [498, 372]},
						"tinygif": {"url": "https://media.tenor.example/t1-tiny.gif", "dims": [220, 164]}
					}
				]
			},
			{
				"id": "t2",
				"itemurl": "https://tenor.example/view/t2",
				"media": [
					{
						"gif": {"url": "https://media.tenor.example/t2.gif", "dims": [300, 300]}
					}
				]
			},
			{
				"id": "t3",
				"title": "No Media"
			}
		]
	}`
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	gifs, err := s.FetchEndpoint(context.Background(), s.BuildEndpoint("dogs", 3))
	require.NoError(t, err)
	require.Len(t, gifs, 3)

	assert.Equal(t, "t1", gifs[0].ID)
	assert.Equal(t, "Excited Dog", gifs[0].Title)
	assert.Equal(t, "https://media.tenor.example/t1-tiny.gif", gifs[0].PreviewURL)
	assert.Equal(t, "https://media.tenor.example/t1.gif", gifs[0].OriginalURL)
	assert.Equal(t, 498, gifs[0].Width)
	assert.Equal(t, "tenor", gifs[0].Source)

	// No tiny variant: the full GIF doubles as preview.
	assert.Equal(t, models.UntitledTitle, gifs[1].Title)
	assert.Equal(t, "https://media.tenor.example/t2.gif", gifs[1].PreviewURL)

	// No media at all still yields an item, just without image URLs.
	assert.Equal(t, "t3", gifs[2].ID)
	assert.Empty(t, gifs[2].PreviewURL)
}

func TestFetchEndpointServerError(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	_, err := s.FetchEndpoint(context.Background(), s.BuildEndpoint("dogs", 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
