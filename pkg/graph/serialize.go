package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/crawlviz/pkg/layout"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// The kind must be one of the layout kinds; every edge must reference a
// positioned node.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if !layout.Kind(l.Kind).IsValid() {
		return Layout{}, fmt.Errorf("unknown layout kind %q", l.Kind)
	}

	ids := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		ids[n.ID] = true
	}
	for _, e := range l.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			return Layout{}, fmt.Errorf("edge %s references unknown node", e.ID)
		}
	}

	if l.Nodes == nil {
		l.Nodes = []PositionedNode{}
	}
	if l.Edges == nil {
		l.Edges = []ClassifiedEdge{}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
