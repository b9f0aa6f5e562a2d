package graph

import (
	"github.com/matzehuels/crawlviz/pkg/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Tier is the depth-based color tier of a node.
type Tier string

// Node style tiers.
const (
	TierRoot       Tier = "root"
	TierDepth1     Tier = "depth1"
	TierDepth2     Tier = "depth2"
	TierDepth3Plus Tier = "depth3plus"
	TierExternal   Tier = "external"
)

// TierColors maps each tier to its fill color.
var TierColors = map[Tier]string{
	TierRoot:       "#e4572e",
	TierDepth1:     "#17bebb",
	TierDepth2:     "#76b041",
	TierDepth3Plus: "#ffc914",
	TierExternal:   "#9e9e9e",
}

// Edge kinds as they appear on the wire.
const (
	EdgeHierarchical = string(layout.EdgeHierarchical)
	EdgeCrossLink    = string(layout.EdgeCrossLink)
)

// =============================================================================
// Layout - Rendering Surface Format
// =============================================================================

// Layout is the document consumed by the rendering surface.
//
// Stale and Error are set when the crawl data could not be refreshed and
// this layout is the last good one; surfaces should keep drawing it with an
// error indicator.
type Layout struct {
	JobID  string           `json:"job_id,omitempty" bson:"job_id,omitempty"`
	Kind   string           `json:"kind" bson:"kind"`
	Nodes  []PositionedNode `json:"nodes" bson:"nodes"`
	Edges  []ClassifiedEdge `json:"edges" bson:"edges"`
	Bounds Bounds           `json:"bounds" bson:"bounds"`

	// Requested is set when the requested kind was unknown and Kind is
	// the fallback that was applied instead.
	Requested string `json:"requested_kind,omitempty" bson:"requested_kind,omitempty"`

	// Dangling counts edges left out because an endpoint is not a node.
	Dangling int `json:"dangling_edges,omitempty" bson:"dangling_edges,omitempty"`

	Stale bool   `json:"stale,omitempty" bson:"stale,omitempty"`
	Error string `json:"error,omitempty" bson:"error,omitempty"`
}

// IsFallback reports whether an unknown kind was replaced by the fallback.
func (l *Layout) IsFallback() bool { return l.Requested != "" && l.Requested != l.Kind }

// Node returns the positioned node with the given id.
func (l *Layout) Node(id string) (PositionedNode, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// CountEdges returns the number of edges of the given wire kind.
func (l *Layout) CountEdges(kind string) int {
	count := 0
	for _, e := range l.Edges {
		if e.Kind == kind {
			count++
		}
	}
	return count
}

// Bounds is the bounding box of all node positions.
type Bounds struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// =============================================================================
// Node / Edge
// =============================================================================

// PositionedNode is a node placed on the rendering surface.
type PositionedNode struct {
	ID     string     `json:"id" bson:"id"`
	X      float64    `json:"x" bson:"x"`
	Y      float64    `json:"y" bson:"y"`
	Label  string     `json:"label,omitempty" bson:"label,omitempty"`
	URL    string     `json:"url,omitempty" bson:"url,omitempty"`
	Domain string     `json:"domain,omitempty" bson:"domain,omitempty"`
	Depth  int        `json:"depth" bson:"depth"`
	Style  StyleHints `json:"style_hints" bson:"style_hints"`
}

// StyleHints tells the surface how to draw a node.
type StyleHints struct {
	Tier  Tier   `json:"tier" bson:"tier"`
	Color string `json:"color" bson:"color"`
	// Size is the payload size in bytes; surfaces may scale nodes by it.
	Size int64 `json:"size,omitempty" bson:"size,omitempty"`
}

// ClassifiedEdge is an edge tagged as hierarchical or cross-link.
type ClassifiedEdge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Kind   string `json:"kind" bson:"kind"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// IsHierarchical reports whether the edge is a parent → child discovery.
func (e ClassifiedEdge) IsHierarchical() bool { return e.Kind == EdgeHierarchical }
