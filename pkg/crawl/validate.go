package crawl

import (
	"errors"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

var (
	// ErrInvalidNodeID is returned by [Validate] when a node has an empty id.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Validate] when two nodes share an id.
	// Every node must receive exactly one position.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrNegativeDepth is returned by [Validate] when a node's depth is below 0.
	ErrNegativeDepth = errors.New("depth must not be negative")

	// ErrNegativeDiscoveryOrder is returned by [Validate] when a node's
	// discovery order is below 0.
	ErrNegativeDiscoveryOrder = errors.New("discovery order must not be negative")

	// ErrMissingField is returned by [ReadGraph] when a node omits depth or
	// discovery_order.
	ErrMissingField = errors.New("missing required field")
)

// Validate checks the node preconditions of the layout engine.
//
// It returns a MALFORMED_NODE coded error wrapping one of the sentinel
// errors above for the first violation found, or nil.
func Validate(nodes []Node) error {
	seen := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return malformed(ErrInvalidNodeID, "node at index %d", i)
		}
		if seen[n.ID] {
			return malformed(ErrDuplicateNodeID, "node %q", n.ID)
		}
		seen[n.ID] = true
		if n.Depth < 0 {
			return malformed(ErrNegativeDepth, "node %q", n.ID)
		}
		if n.DiscoveryOrder < 0 {
			return malformed(ErrNegativeDiscoveryOrder, "node %q", n.ID)
		}
	}
	return nil
}

// Validate checks the graph's nodes. Edges are not validated: edges with
// unknown endpoints are classified as cross-links, not rejected.
func (g *Graph) Validate() error {
	return Validate(g.Nodes)
}

func malformed(cause error, format string, args ...any) error {
	return errs.Wrap(errs.ErrCodeMalformedNode, cause, format, args...)
}
