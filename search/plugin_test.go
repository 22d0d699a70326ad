package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"giffer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name       string
	configured bool
	prefix     string
	gifs       []models.Gif
	err        error
	calls      int
}

func (p *stubPlugin) Name() string     { return p.name }
func (p *stubPlugin) Configured() bool { return p.configured }

func (p *stubPlugin) BuildEndpoint(query string, limit int) string {
	return p.prefix + "?q=" + query
}

func (p *stubPlugin) Recognizes(endpoint string) bool {
	return strings.HasPrefix(endpoint, p.prefix)
}

func (p *stubPlugin) FetchEndpoint(ctx context.Context, endpoint string) ([]models.Gif, error) {
	p.calls++
	return p.gifs, p.err
}

func TestActivePicksFirstConfiguredPlugin(t *testing.T) {
	ResetPlugins()
	unconfigured := &stubPlugin{name: "first", prefix: "http://first.example"}
	configured := &stubPlugin{name: "second", configured: true, prefix: "http://second.example"}
	RegisterPlugin(unconfigured)
	RegisterPlugin(configured)

	m := NewManager()
	require.NotNil(t, m.Active())
	assert.Equal(t, "second", m.Active().Name())
}

func TestBuildEndpointWithoutProviders(t *testing.T) {
	ResetPlugins()
	m := NewManager()

	assert.Nil(t, m.Active())
	assert.Empty(t, m.BuildEndpoint("cats", 3))
}

func TestFetchEndpointRoutesToOwningPlugin(t *testing.T) {
	ResetPlugins()
	first := &stubPlugin{name: "first", configured: true, prefix: "http://first.example",
		gifs: []models.Gif{{ID: "f"}}}
	second := &stubPlugin{name: "second", configured: true, prefix: "http://second.example",
		gifs: []models.Gif{{ID: "s"}}}
	RegisterPlugin(first)
	RegisterPlugin(second)

	m := NewManager()
	gifs, err := m.FetchEndpoint(context.Background(), "http://second.example?q=cats")
	require.NoError(t, err)
	require.Len(t, gifs, 1)
	assert.Equal(t, "s", gifs[0].ID)
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestFetchEndpointUnknownEndpoint(t *testing.T) {
	ResetPlugins()
	RegisterPlugin(&stubPlugin{name: "only", configured: true, prefix: "http://only.example"})

	m := NewManager()
	_, err := m.FetchEndpoint(context.Background(), "http://stranger.example")
	assert.Error(t, err)
}

func TestSearchFallsThroughToNextProvider(t *testing.T) {
	ResetPlugins()
	failing := &stubPlugin{name: "failing", configured: true, prefix: "http://a.example",
		err: errors.New("boom")}
	working := &stubPlugin{name: "working", configured: true, prefix: "http://b.example",
		gifs: []models.Gif{{ID: "ok"}}}
	RegisterPlugin(failing)
	RegisterPlugin(working)

	m := NewManager()
	gifs, err := m.Search(context.Background(), "cats", 3)
	require.NoError(t, err)
	require.Len(t, gifs, 1)
	assert.Equal(t, "ok", gifs[0].ID)
}

func TestSearchSkipsUnconfiguredProviders(t *testing.T) {
	ResetPlugins()
	skipped := &stubPlugin{name: "skipped", prefix: "http://a.example",
		gifs: []models.Gif{{ID: "never"}}}
	used := &stubPlugin{name: "used", configured: true, prefix: "http://b.example",
		gifs: []models.Gif{{ID: "yes"}}}
	RegisterPlugin(skipped)
	RegisterPlugin(used)

	m := NewManager()
	gifs, err := m.Search(context.Background(), "cats", 3)
	require.NoError(t, err)
	assert.Equal(t, "yes", gifs[0].ID)
	assert.Equal(t, 0, skipped.calls)
}

func TestSearchReportsLastError(t *testing.T) {
	ResetPlugins()
	RegisterPlugin(&stubPlugin{name: "broken", configured: true, prefix: "http://a.example",
		err: errors.New("boom")})

	m := NewManager()
	_, err := m.Search(context.Background(), "cats", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
