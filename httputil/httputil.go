package httputil

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"giffer/logger"
)

var (
	log = logger.New("httputil")

	// DefaultClient is shared by every outgoing request in the app.
	DefaultClient *http.Client
)

func init() {
	DefaultClient = createHTTPClient()
}

func createHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = 7 * time.Second
	transport.ResponseHeaderTimeout = 15 * time.Second
	transport.MaxIdleConnsPerHost = 20
	transport.IdleConnTimeout = 5 * time.Minute

	return &http.Client{
		Transport: transport,
	}
}

// GetRequest fetches url and unmarshals the JSON body into result.
func GetRequest(ctx context.Context, url string, result any) error {
	log.Debug().
		Str("url", url).
		Send()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return err
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Err(err).Msg("Failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, result)
}

// GetBytes fetches url and returns the raw body, used for image downloads.
func GetBytes(ctx context.Context, url string) ([]byte, error) {
	log.Debug().
		Str("url", url).
		Send()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Err(err).Msg("Failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}
