package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeNotFound, "crawl job %q not found", "job-1"), `NOT_FOUND: crawl job "job-1" not found`},
		{Wrap(ErrCodeNetwork, cause, "fetch job %s", "job-1"), "NETWORK_ERROR: fetch job job-1: connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch job")

	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Error("Wrap should keep the cause in the chain")
	}
}

func TestCodeLookup(t *testing.T) {
	malformed := New(ErrCodeMalformedNode, "node %q: negative depth", "a")

	tests := []struct {
		name      string
		err       error
		code      Code
		message   string
		temporary bool
	}{
		{"direct", malformed, ErrCodeMalformedNode, `node "a": negative depth`, false},
		{"fmt wrapped", fmt.Errorf("layout: %w", malformed), ErrCodeMalformedNode, `node "a": negative depth`, false},
		{"outermost wins", Wrap(ErrCodeInvalidInput, malformed, "decode graph"), ErrCodeInvalidInput, "decode graph", false},
		{"network", New(ErrCodeNetwork, "upstream returned status 502"), ErrCodeNetwork, "upstream returned status 502", true},
		{"timeout", New(ErrCodeTimeout, "crawler did not answer"), ErrCodeTimeout, "crawler did not answer", true},
		{"plain", errors.New("plain"), "", "plain", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Error("Is(INTERNAL_ERROR) = true")
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
			if got := Temporary(tt.err); got != tt.temporary {
				t.Errorf("Temporary() = %v, want %v", got, tt.temporary)
			}
		})
	}
}

func TestBanner(t *testing.T) {
	malformed := New(ErrCodeMalformedNode, "node %q: negative depth", "a")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"malformed node", malformed, BannerIncomplete},
		{"below another code", Wrap(ErrCodeInvalidInput, malformed, "decode"), BannerIncomplete},
		{"behind fmt", fmt.Errorf("load: %w", Wrap(ErrCodeInvalidInput, malformed, "decode")), BannerIncomplete},
		{"network", New(ErrCodeNetwork, "upstream down"), ""},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Banner(tt.err); got != tt.want {
				t.Errorf("Banner() = %q, want %q", got, tt.want)
			}
		})
	}
}
