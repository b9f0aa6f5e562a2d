package httputil

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 10 * time.Second

// NewClient creates an HTTP client with the given timeout.
// A zero timeout means [DefaultTimeout].
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// CheckStatus maps a response status code to an error. 2xx codes are nil.
func CheckStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errs.New(errs.ErrCodeNotFound, "upstream returned status %d", code)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: errs.New(errs.ErrCodeNetwork, "upstream returned status %d", code)}
	default:
		return errs.New(errs.ErrCodeNetwork, "upstream returned status %d", code)
	}
}

// CheckResponse is [CheckStatus] plus the Retry-After header: a retryable
// error carries the requested wait.
func CheckResponse(resp *http.Response) error {
	err := CheckStatus(resp.StatusCode)
	if re, ok := err.(*RetryableError); ok {
		re.After = RetryAfter(resp.Header.Get("Retry-After"), time.Now())
	}
	return err
}

// RetryAfter parses a Retry-After value given in seconds or as an HTTP
// date. It returns zero when the value is missing, invalid or in the past.
func RetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
