package giphy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"giffer/config"
	"giffer/httputil"
	"giffer/logger"
	"giffer/models"
	"giffer/scrape"

	"golang.org/x/time/rate"
	"gopkg.in/guregu/null.v4"
)

const defaultBaseURL = "https://api.giphy.com/v1/gifs/search"

var log = logger.New("giphy")

type (
	// Service implements search.Plugin for the Giphy search API.
	Service struct {
		baseURL string
		apiKey  string
		rating  string
		limiter *rate.Limiter
		scraper *scrape.Scraper
	}

	searchResponse struct {
		Data []record `json:"data"`
		Meta struct {
			Status int         `json:"status"`
			Msg    null.String `json:"msg"`
		} `json:"meta"`
	}

	record struct {
		ID     null.String `json:"id"`
		Title  null.String `json:"title"`
		URL    null.String `json:"url"` // permalink to the Giphy page
		Rating null.String `json:"rating"`
		Images imageSet    `json:"images"`
	}

	imageSet struct {
		DownsizedMedium variant `json:"downsized_medium"`
		Original        variant `json:"original"`
		Downsized       variant `json:"downsized"`
	}

	// Giphy serializes dimensions as strings.
	variant struct {
		URL    null.String `json:"url"`
		Width  null.String `json:"width"`
		Height null.String `json:"height"`
	}
)

// New creates the Giphy provider. The scraper may be nil to disable the
// permalink image fallback.
func New(cfg config.Config, scraper *scrape.Scraper) *Service {
	return &Service{
		baseURL: defaultBaseURL,
		apiKey:  cfg.GiphyAPIKey,
		rating:  cfg.Rating,
		// Queries recompute per keystroke, so keep a polite request pace.
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 2),
		scraper: scraper,
	}
}

func (s *Service) Name() string { return "giphy" }

func (s *Service) Configured() bool { return s.apiKey != "" }

// BuildEndpoint composes the full search URL for a query and limit.
func (s *Service) BuildEndpoint(query string, limit int) string {
	if limit < 1 {
		limit = config.DefaultLimit
	}
	endpoint := fmt.Sprintf("%s?api_key=%s&q=%s&limit=%d",
		s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(query), limit)
	if s.rating != "" {
		endpoint += "&rating=" + url.QueryEscape(s.rating)
	}
	return endpoint
}

func (s *Service) Recognizes(endpoint string) bool {
	return strings.HasPrefix(endpoint, s.baseURL)
}

// FetchEndpoint performs the GET and maps each raw record into a models.Gif.
// An absent or empty data field yields an empty deck, not an error.
func (s *Service) FetchEndpoint(ctx context.Context, endpoint string) ([]models.Gif, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := httputil.GetRequest(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	gifs := make([]models.Gif, 0, len(resp.Data))
	for _, rec := range resp.Data {
		gifs = append(gifs, s.normalize(ctx, rec))
	}

	log.Debug().
		Int("records", len(resp.Data)).
		Msg("normalized search response")

	return gifs, nil
}

// normalize maps one raw API record to the display model, preferring the
// downsized_medium variant, then original, then downsized.
func (s *Service) normalize(ctx context.Context, rec record) models.Gif {
	preview, width, height := firstVariant(
		rec.Images.DownsizedMedium,
		rec.Images.Original,
		rec.Images.Downsized,
	)

	permalink := rec.URL.ValueOrZero()
	if preview == "" && s.scraper != nil && permalink != "" {
		if img, err := s.scraper.PreviewImage(ctx, permalink); err == nil {
			preview = img
		} else {
			log.Debug().Err(err).Str("permalink", permalink).Msg("permalink image fallback failed")
		}
	}

	gif := models.NewGif(rec.ID.ValueOrZero(), rec.Title.ValueOrZero(), preview, permalink)
	gif.Source = s.Name()
	gif.Rating = rec.Rating.ValueOrZero()
	gif.OriginalURL = rec.Images.Original.URL.ValueOrZero()
	if gif.OriginalURL == "" {
		gif.OriginalURL = preview
	}
	gif.Width = width
	gif.Height = height
	return gif
}

// firstVariant returns the URL and dimensions of the first variant that has a
// non-empty URL.
func firstVariant(variants ...variant) (string, int, int) {
	for _, v := range variants {
		if u := v.URL.ValueOrZero(); u != "" {
			return u, atoiOrZero(v.Width.ValueOrZero()), atoiOrZero(v.Height.ValueOrZero())
		}
	}
	return "", 0, 0
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
