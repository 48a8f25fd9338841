package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the shared client used for outbound calls. The
// timeout is a hard upper bound on top of any request context deadline.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
	}
}
