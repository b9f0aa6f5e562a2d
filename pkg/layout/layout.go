package layout

import (
	"math"

	"github.com/matzehuels/crawlviz/pkg/crawl"
)

// Point is a position on the rendering surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result maps every input node id to its position.
type Result struct {
	// Kind is the algorithm actually applied, which differs from the
	// requested kind after a fallback.
	Kind      Kind
	Positions map[string]Point
}

// Len returns the number of positioned nodes.
func (r Result) Len() int { return len(r.Positions) }

// Position returns the position of node id.
func (r Result) Position(id string) (Point, bool) {
	p, ok := r.Positions[id]
	return p, ok
}

// Bounds returns the bounding box of all positions. Both points are the
// origin for an empty result.
func (r Result) Bounds() (lo, hi Point) {
	first := true
	for _, p := range r.Positions {
		if first {
			lo, hi = p, p
			first = false
			continue
		}
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Compute positions nodes with the given layout kind.
//
// The function is pure: it never fails, performs no I/O and returns
// identical positions for identical input. Unknown kinds fall back to the
// grid layout. Node preconditions (unique ids, non-negative depth and
// discovery order) are the caller's responsibility; see [crawl.Validate].
func Compute(nodes []crawl.Node, kind Kind, opts ...Option) Result {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !kind.IsValid() {
		kind = FallbackKind
	}

	pos := make(map[string]Point, len(nodes))
	if len(nodes) == 0 {
		return Result{Kind: kind, Positions: pos}
	}

	switch kind {
	case Hierarchical:
		hierarchical(nodes, o, pos)
	case Force:
		force(nodes, o, pos)
	case Circular:
		circular(nodes, o, pos)
	default:
		grid(nodes, o, pos)
	}
	return Result{Kind: kind, Positions: pos}
}

// =============================================================================
// Strategies
// =============================================================================

// hierarchical centers each depth tier on x=0 and stacks tiers downward.
func hierarchical(nodes []crawl.Node, o Options, pos map[string]Point) {
	for depth, tier := range tiers(nodes) {
		startX := -float64(len(tier)-1) * o.HorizontalSpacing / 2
		y := float64(depth) * o.VerticalSpacing
		for i, n := range tier {
			pos[n.ID] = Point{X: startX + float64(i)*o.HorizontalSpacing, Y: y}
		}
	}
}

// force places node i of n on angle 2πi/n with a radius growing with depth.
func force(nodes []crawl.Node, o Options, pos map[string]Point) {
	n := float64(len(nodes))
	for i, node := range nodes {
		theta := 2 * math.Pi * float64(i) / n
		r := o.BaseRadius + float64(node.Depth)*o.DepthIncrement
		pos[node.ID] = polar(r, theta)
	}
}

// circular puts every depth on its own ring, spread evenly by angle.
func circular(nodes []crawl.Node, o Options, pos map[string]Point) {
	for depth, ring := range tiers(nodes) {
		r := float64(depth+1) * o.RingSpacing
		count := float64(len(ring))
		for i, n := range ring {
			pos[n.ID] = polar(r, 2*math.Pi*float64(i)/count)
		}
	}
}

// grid fills rows of ceil(sqrt(n)) columns in input order.
func grid(nodes []crawl.Node, o Options, pos map[string]Point) {
	cols := int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	for i, n := range nodes {
		row, col := i/cols, i%cols
		pos[n.ID] = Point{X: float64(col) * o.CellSize, Y: float64(row) * o.CellSize}
	}
}

// tiers groups nodes by depth, keeping input order within each group.
func tiers(nodes []crawl.Node) map[int][]crawl.Node {
	out := make(map[int][]crawl.Node)
	for _, n := range nodes {
		out[n.Depth] = append(out[n.Depth], n)
	}
	return out
}

func polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}
