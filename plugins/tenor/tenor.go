package tenor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"giffer/config"
	"giffer/httputil"
	"giffer/logger"
	"giffer/models"

	"golang.org/x/time/rate"
	"gopkg.in/guregu/null.v4"
)

const defaultBaseURL = "https://g.tenor.com/v1/search"

var log = logger.New("tenor")

type (
	// Service implements search.Plugin for the Tenor search API.
	Service struct {
		baseURL string
		apiKey  string
		limiter *rate.Limiter
	}

	searchResponse struct {
		Results []result `json:"results"`
	}

	result struct {
		ID      null.String `json:"id"`
		Title   null.String `json:"title"`
		ItemURL null.String `json:"itemurl"`
		Media   []mediaSet  `json:"media"`
	}

	mediaSet struct {
		Gif     media `json:"gif"`
		TinyGif media `json:"tinygif"`
	}

	media struct {
		URL  null.String `json:"url"`
		Dims []int       `json:"dims"`
	}
)

// New creates the Tenor provider.
func New(cfg config.Config) *Service {
	return &Service{
		baseURL: defaultBaseURL,
		apiKey:  cfg.TenorAPIKey,
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 2),
	}
}

func (s *Service) Name() string { return "tenor" }

func (s *Service) Configured() bool { return s.apiKey != "" }

func (s *Service) BuildEndpoint(query string, limit int) string {
	if limit < 1 {
		limit = config.DefaultLimit
	}
	return fmt.Sprintf("%s?key=%s&q=%s&limit=%d",
		s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(query), limit)
}

func (s *Service) Recognizes(endpoint string) bool {
	return strings.HasPrefix(endpoint, s.baseURL)
}

// FetchEndpoint performs the GET and maps the Tenor media sets into the shared
// display model. Missing results yield an empty deck.
func (s *Service) FetchEndpoint(ctx context.Context, endpoint string) ([]models.Gif, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := httputil.GetRequest(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	gifs := make([]models.Gif, 0, len(resp.Results))
	for _, res := range resp.Results {
		gifs = append(gifs, s.normalize(res))
	}

	log.Debug().
		Int("records", len(resp.Results)).
		Msg("normalized search response")

	return gifs, nil
}

// normalize prefers the tiny variant for the card preview and keeps the full
// GIF as the original.
func (s *Service) normalize(res result) models.Gif {
	var preview, original string
	var width, height int

	if len(res.Media) > 0 {
		set := res.Media[0]
		original = set.Gif.URL.ValueOrZero()
		preview = set.TinyGif.URL.ValueOrZero()
		if preview == "" {
			preview = original
		}
		if dims := set.Gif.Dims; len(dims) == 2 {
			width, height = dims[0], dims[1]
		}
	}

	gif := models.NewGif(res.ID.ValueOrZero(), res.Title.ValueOrZero(), preview, res.ItemURL.ValueOrZero())
	gif.Source = s.Name()
	gif.OriginalURL = original
	if gif.OriginalURL == "" {
		gif.OriginalURL = preview
	}
	gif.Width = width
	gif.Height = height
	return gif
}
