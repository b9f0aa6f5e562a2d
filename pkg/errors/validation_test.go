package errors

import (
	"strings"
	"testing"
)

func TestValidateJobID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "job-42", false},
		{"valid uuid", "0b7a8c1e-9a4f-4c53-8f57-1c2f3a4b5c6d", false},
		{"valid dotted", "crawl.2026.10", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"slash", "jobs/42", true},
		{"backslash", "jobs\\42", true},
		{"traversal", "..", true},
		{"space", "job 42", true},
		{"null byte", "job\x0042", true},
		{"newline", "job\n42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJobID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJobID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidJobID) {
				t.Errorf("ValidateJobID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidJobID)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://crawler.internal", false},
		{"http", "http://localhost:8080", false},
		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
