package httputil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

var errTransient = errors.New("connection reset")

func TestPolicyDo(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("bad request")

	tests := []struct {
		name      string
		attempts  int
		failFirst int   // calls that fail before success
		failWith  error // error returned while failing
		wantCalls int
		wantErr   error
	}{
		{"success", 3, 0, nil, 1, nil},
		{"non-retryable", 3, 99, permanent, 1, permanent},
		{"retry then succeed", 3, 2, &RetryableError{Err: errTransient}, 3, nil},
		{"exhausted", 2, 99, &RetryableError{Err: errTransient}, 2, errTransient},
		{"minimum one attempt", 0, 99, &RetryableError{Err: errTransient}, 1, errTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Policy{Attempts: tt.attempts, Backoff: time.Millisecond}.Do(ctx, func() error {
				calls++
				if calls <= tt.failFirst {
					return tt.failWith
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPolicyWaits(t *testing.T) {
	ctx := context.Background()

	// A Retry-After hint of an hour is capped by MaxBackoff.
	start := time.Now()
	calls := 0
	err := Policy{Attempts: 2, Backoff: time.Hour, MaxBackoff: 5 * time.Millisecond}.Do(ctx, func() error {
		calls++
		if calls == 1 {
			return &RetryableError{Err: errTransient, After: time.Hour}
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("err %v, calls %d", err, calls)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("waited %v, MaxBackoff should cap it", elapsed)
	}

	// A short hint replaces a long backoff.
	start = time.Now()
	calls = 0
	_ = Policy{Attempts: 2, Backoff: time.Hour}.Do(ctx, func() error {
		calls++
		if calls == 1 {
			return &RetryableError{Err: errTransient, After: time.Millisecond}
		}
		return nil
	})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("waited %v, server hint should win", elapsed)
	}
}

func TestPolicyContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Policy{Attempts: 3, Backoff: time.Hour}.Do(ctx, func() error {
		return &RetryableError{Err: errTransient}
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantCode  errs.Code
		retryable bool
	}{
		{http.StatusOK, "", false},
		{http.StatusNoContent, "", false},
		{http.StatusNotFound, errs.ErrCodeNotFound, false},
		{http.StatusTooManyRequests, errs.ErrCodeNetwork, true},
		{http.StatusBadGateway, errs.ErrCodeNetwork, true},
		{http.StatusUnauthorized, errs.ErrCodeNetwork, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := CheckStatus(tt.code)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("CheckStatus(%d) = %v, want nil", tt.code, err)
				}
				return
			}
			if got := errs.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
			var re *RetryableError
			if got := errors.As(err, &re); got != tt.retryable {
				t.Errorf("retryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestCheckResponse(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusServiceUnavailable, Header: http.Header{}}
	resp.Header.Set("Retry-After", "7")

	var re *RetryableError
	if err := CheckResponse(resp); !errors.As(err, &re) || re.After != 7*time.Second {
		t.Errorf("CheckResponse = %v, want retryable after 7s", err)
	}

	resp.StatusCode = http.StatusOK
	if err := CheckResponse(resp); err != nil {
		t.Errorf("CheckResponse(200) = %v", err)
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{" 120 ", 2 * time.Minute},
		{"-1", 0},
		{"soon", 0},
		{now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0},
	}
	for _, tt := range tests {
		if got := RetryAfter(tt.in, now); got != tt.want {
			t.Errorf("RetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewClient(t *testing.T) {
	if c := NewClient(0); c.Timeout != DefaultTimeout {
		t.Errorf("default timeout = %v", c.Timeout)
	}
	if c := NewClient(time.Second); c.Timeout != time.Second {
		t.Errorf("timeout = %v", c.Timeout)
	}
}
