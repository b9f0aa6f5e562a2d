// Package httputil provides HTTP helpers for upstream crawl services.
//
// # Retry
//
// [Policy.Do] runs an operation with exponential backoff. Only errors
// wrapped in [RetryableError] are retried, so callers decide what is
// transient:
//
//	err := httputil.DefaultPolicy.Do(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckResponse(resp)
//	})
//
// # Status mapping
//
// [CheckStatus] turns HTTP status codes into coded errors: 404 becomes
// NOT_FOUND, 5xx and 429 become retryable NETWORK_ERROR, other non-2xx
// codes become non-retryable NETWORK_ERROR. [CheckResponse] also honors a
// Retry-After header.
//
// # Defaults
//
//   - Request timeout: 10 seconds ([NewClient])
//   - Attempts: 3 ([DefaultPolicy])
//   - Initial backoff: 1 second, doubling, capped at 30 seconds
package httputil
