// Package httputil provides HTTP utilities for fetching remote datasets.
//
// [Fetcher] downloads a URL with automatic retry for transient failures
// (network errors, 5xx responses, 429 rate limits), using exponential
// backoff between attempts. [Retry] is the underlying retry loop; wrap
// transient errors with [RetryableError] to make it try again.
//
// Usage:
//
//	f := httputil.NewFetcher()
//	data, err := f.Fetch(ctx, "https://example.com/usage.json")
package httputil
