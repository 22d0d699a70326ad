package search

import (
	"context"
	"fmt"

	"giffer/models"
)

// Plugin is implemented by any package that can turn a query into a search
// endpoint and fetch a normalized deck of GIFs from it.
type Plugin interface {
	Name() string

	// Configured reports whether the provider has the credentials it needs.
	Configured() bool

	// BuildEndpoint derives the full search URL for a query and result limit.
	BuildEndpoint(query string, limit int) string

	// Recognizes reports whether the endpoint belongs to this provider.
	Recognizes(endpoint string) bool

	// FetchEndpoint performs the GET and normalizes the response records.
	FetchEndpoint(ctx context.Context, endpoint string) ([]models.Gif, error)
}

// global registry that main populates before the UI starts.
var registeredPlugins []Plugin

// RegisterPlugin makes a provider available to the manager.
func RegisterPlugin(p Plugin) {
	registeredPlugins = append(registeredPlugins, p)
}

// ResetPlugins clears the registry. Only tests use this.
func ResetPlugins() {
	registeredPlugins = nil
}

// Manager is the façade the rest of the application talks to. It forwards
// requests to the registered providers.
type Manager struct {
	plugins []Plugin
}

// NewManager constructs a manager over the registered provider list.
func NewManager() *Manager {
	return &Manager{plugins: registeredPlugins}
}

// Active returns the first configured provider, or nil if none is usable.
func (m *Manager) Active() Plugin {
	for _, p := range m.plugins {
		if p.Configured() {
			return p
		}
	}
	return nil
}

// BuildEndpoint derives the search URL using the active provider. An empty
// string means no provider is configured; callers surface that as an invalid
// endpoint.
func (m *Manager) BuildEndpoint(query string, limit int) string {
	p := m.Active()
	if p == nil {
		return ""
	}
	return p.BuildEndpoint(query, limit)
}

// FetchEndpoint routes the endpoint to the provider that owns it.
func (m *Manager) FetchEndpoint(ctx context.Context, endpoint string) ([]models.Gif, error) {
	for _, p := range m.plugins {
		if p.Recognizes(endpoint) {
			return p.FetchEndpoint(ctx, endpoint)
		}
	}
	return nil, fmt.Errorf("no provider recognizes endpoint %s", endpoint)
}

// Search is the one-shot convenience used by the CLI mode: it asks each
// configured provider in order until one returns results.
func (m *Manager) Search(ctx context.Context, query string, limit int) ([]models.Gif, error) {
	var lastErr error
	for _, p := range m.plugins {
		if !p.Configured() {
			continue
		}
		gifs, err := p.FetchEndpoint(ctx, p.BuildEndpoint(query, limit))
		if err != nil {
			lastErr = err
			continue
		}
		if len(gifs) > 0 {
			return gifs, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no provider produced results for %q", query)
}
