package errors

import (
	"strings"
	"unicode"
)

// maxJobIDLength bounds job identifiers accepted from the CLI and the API.
const maxJobIDLength = 128

// ValidateJobID validates a crawl job identifier before it is used in file
// paths, SQL parameters, cache keys or upstream URLs.
//
// Rules:
//   - Non-empty, at most 128 characters
//   - No control characters or whitespace
//   - No path separators or traversal sequences
func ValidateJobID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidJobID, "job id cannot be empty")
	}
	if len(id) > maxJobIDLength {
		return New(ErrCodeInvalidJobID, "job id too long (max %d characters)", maxJobIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidJobID, "job id contains invalid characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidJobID, "job id cannot contain path separators")
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidJobID, "job id cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
