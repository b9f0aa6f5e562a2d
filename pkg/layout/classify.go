package layout

import "github.com/matzehuels/crawlviz/pkg/crawl"

// EdgeKind distinguishes discovery edges from other links.
type EdgeKind string

const (
	// EdgeHierarchical marks the canonical parent → child discovery edge.
	EdgeHierarchical EdgeKind = "hierarchical"
	// EdgeCrossLink marks every other link (same depth, back-reference,
	// depth jump, or a losing parent candidate).
	EdgeCrossLink EdgeKind = "cross-link"
)

// Classification partitions a graph's non-self edges.
// Both slices keep the input edge order.
type Classification struct {
	Hierarchical []crawl.Edge
	CrossLink    []crawl.Edge
}

// Len returns the number of classified edges.
func (c Classification) Len() int { return len(c.Hierarchical) + len(c.CrossLink) }

// Parents returns the canonical parent id of every node that has one.
func (c Classification) Parents() map[string]string {
	m := make(map[string]string, len(c.Hierarchical))
	for _, e := range c.Hierarchical {
		m[e.Target] = e.Source
	}
	return m
}

// Classify splits edges into hierarchical edges and cross-links.
//
// An edge is a parent candidate when its target is exactly one level deeper
// than its source. For each target, the candidate whose source has the
// smallest discovery order becomes the hierarchical edge (ties go to the
// earlier edge); the other candidates are cross-links. Edges that are not
// candidates, including those whose endpoints are not in nodes, are
// cross-links. Self-edges appear in neither set.
func Classify(nodes []crawl.Node, edges []crawl.Edge) Classification {
	var c Classification
	for i, k := range EdgeKinds(nodes, edges) {
		switch k {
		case EdgeHierarchical:
			c.Hierarchical = append(c.Hierarchical, edges[i])
		case EdgeCrossLink:
			c.CrossLink = append(c.CrossLink, edges[i])
		}
	}
	return c
}

// EdgeKinds returns the classification of every edge, aligned with edges.
// Self-edges get the empty kind. See [Classify] for the rules.
func EdgeKinds(nodes []crawl.Node, edges []crawl.Edge) []EdgeKind {
	index := crawl.IndexNodes(nodes)

	// target id -> index into edges of the winning candidate
	parent := make(map[string]int)
	for i, e := range edges {
		if e.IsSelf() || !isCandidate(index, e) {
			continue
		}
		best, ok := parent[e.Target]
		if !ok || index[e.Source].DiscoveryOrder < index[edges[best].Source].DiscoveryOrder {
			parent[e.Target] = i
		}
	}

	out := make([]EdgeKind, len(edges))
	for i, e := range edges {
		switch best, ok := parent[e.Target]; {
		case e.IsSelf():
		case ok && best == i:
			out[i] = EdgeHierarchical
		default:
			out[i] = EdgeCrossLink
		}
	}
	return out
}

func isCandidate(index map[string]crawl.Node, e crawl.Edge) bool {
	src, okS := index[e.Source]
	dst, okT := index[e.Target]
	return okS && okT && dst.Depth == src.Depth+1
}
