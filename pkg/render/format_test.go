package render

import (
	"testing"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"SVG", FormatSVG, false},
		{".png", FormatPNG, false},
		{" json ", FormatJSON, false},
		{"dot", FormatDOT, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errs.Is(err, errs.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want %s", errs.GetCode(err), errs.ErrCodeInvalidFormat)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAttributes(t *testing.T) {
	for _, f := range Formats() {
		if f.ContentType() == "application/octet-stream" {
			t.Errorf("%s has no content type", f)
		}
		if f.Extension() != "."+string(f) {
			t.Errorf("%s extension = %q", f, f.Extension())
		}
	}
	if !FormatPNG.IsBinary() || FormatSVG.IsBinary() {
		t.Error("only png should be binary")
	}
}
