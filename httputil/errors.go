package httputil

import (
	"fmt"
	"net/http"
)

// HTTPError is returned for any non-200 response. Its message carries the
// numeric status so the UI error string does too.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.StatusCode)
}
