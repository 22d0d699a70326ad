package config

import (
	"os"
	"strconv"
)

const (
	// DefaultLimit is used whenever the limit input is empty or unparsable.
	DefaultLimit = 10

	// DefaultRating filters Giphy results; "g" matches the public demo key behavior.
	DefaultRating = "g"
)

// Config carries everything the providers and UI need at startup. API keys are
// never embedded in source; they come from the environment (or a .env file
// loaded by godotenv).
type Config struct {
	GiphyAPIKey string
	TenorAPIKey string
	Limit       int
	Rating      string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		GiphyAPIKey: os.Getenv("GIPHY_API_KEY"),
		TenorAPIKey: os.Getenv("TENOR_API_KEY"),
		Limit:       DefaultLimit,
		Rating:      DefaultRating,
	}

	if v := os.Getenv("GIFFER_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.Limit = n
		}
	}

	if v := os.Getenv("GIFFER_RATING"); v != "" {
		cfg.Rating = v
	}

	return cfg
}

// ParseLimit turns free-text limit input into a usable result count.
func ParseLimit(text string, fallback int) int {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
