// Package httputil provides HTTP utilities for outbound service clients.
//
// # Overview
//
// This package provides infrastructure used by the assist client and any
// other outbound HTTP caller:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/pagesmith/)
// with configurable TTL, so repeated assist requests for an unchanged
// component list don't hit the remote service again.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var resp assistResponse
//	if ok, _ := cache.Get("assist:"+hash, &resp); !ok {
//	    resp = callAssistService()
//	    cache.Set("assist:"+hash, resp)
//	}
//
// Cache keys should be namespaced by client to avoid collisions.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures (network errors,
// 5xx responses) with exponential backoff. Only errors wrapped with
// [RetryableError] are retried:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return doRequest()
//	})
package httputil
