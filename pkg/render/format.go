package render

import (
	"strings"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// Format is an output format for a rendered layout.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatDOT, FormatSVG, FormatPNG}
}

// ParseFormat parses a format name, ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatJSON, FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	case "":
		return "", errs.New(errs.ErrCodeInvalidFormat, "format is required")
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q (want json, dot, svg or png)", s)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// IsBinary reports whether the format is not text.
func (f Format) IsBinary() bool { return f == FormatPNG }

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + string(f) }
