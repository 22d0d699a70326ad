package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Scraper extracts a preview image URL from a GIF's permalink page. Providers
// use it as a fallback when an API record carries no usable image variant.
type Scraper struct {
	client *http.Client
}

// NewScraper creates a scraper with its own conservative timeout.
func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PreviewImage fetches pageURL and returns the best image URL it can find:
// the og:image meta tag when present, otherwise the first <img> on the page.
func (s *Scraper) PreviewImage(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("permalink URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("permalink page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		if img := strings.TrimSpace(content); img != "" {
			return s.absoluteURL(pageURL, img), nil
		}
	}

	if src, ok := doc.Find("img").First().Attr("src"); ok {
		if img := strings.TrimSpace(src); img != "" {
			return s.absoluteURL(pageURL, img), nil
		}
	}

	return "", fmt.Errorf("no image found on %s", pageURL)
}

// absoluteURL resolves a possibly relative image reference against the page URL.
func (s *Scraper) absoluteURL(pageURL, imageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return imageURL
	}
	ref, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	return base.ResolveReference(ref).String()
}
