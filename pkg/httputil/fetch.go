package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFetchBytes caps response bodies; datasets are small.
const maxFetchBytes = 16 << 20

// Fetcher downloads URLs with retry on transient failures.
type Fetcher struct {
	// Client is the HTTP client to use.
	Client *http.Client
	// Attempts is the maximum number of tries per URL.
	Attempts int
	// Delay is the initial backoff; it doubles after each failed attempt.
	Delay time.Duration
}

// NewFetcher returns a Fetcher with defaults suitable for dataset downloads:
// a 30 second request timeout, 3 attempts, 1 second initial backoff.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Attempts: 3,
		Delay:    time.Second,
	}
}

// Fetch downloads the URL and returns the response body.
// Network errors and retryable status codes (429, 5xx) are retried with
// exponential backoff; other non-2xx responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := f.Client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if retryableStatus(resp.StatusCode) {
			return &RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status)}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("GET %s: %s", url, resp.Status)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
		if err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
