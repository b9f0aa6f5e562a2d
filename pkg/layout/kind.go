package layout

import "strings"

// Kind selects the positioning algorithm.
type Kind string

// Supported layout kinds.
const (
	Hierarchical Kind = "hierarchical"
	Force        Kind = "force"
	Circular     Kind = "circular"
	Grid         Kind = "grid"
)

// DefaultKind is used when no kind is requested.
const DefaultKind = Hierarchical

// FallbackKind is applied for unknown kinds.
const FallbackKind = Grid

var kinds = []Kind{Hierarchical, Force, Circular, Grid}

// Kinds returns the supported kinds in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind converts s (case-insensitive, surrounding space ignored) to a
// Kind. ok is false for unknown values; the returned Kind is then
// [FallbackKind]. An empty string yields [DefaultKind].
func ParseKind(s string) (k Kind, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultKind, true
	}
	for _, k := range kinds {
		if string(k) == s {
			return k, true
		}
	}
	return FallbackKind, false
}

// IsValid reports whether k is one of the supported kinds.
func (k Kind) IsValid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the kind's name.
func (k Kind) String() string { return string(k) }
