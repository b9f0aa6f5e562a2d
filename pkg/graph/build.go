package graph

import (
	"fmt"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/layout"
)

// TierOf returns the style tier of a node. Unvisited non-root nodes are
// external regardless of depth.
func TierOf(n crawl.Node) Tier {
	switch {
	case n.Depth == 0:
		return TierRoot
	case n.IsUnvisited():
		return TierExternal
	case n.Depth == 1:
		return TierDepth1
	case n.Depth == 2:
		return TierDepth2
	default:
		return TierDepth3Plus
	}
}

// HintsFor returns the style hints of a node.
func HintsFor(n crawl.Node) StyleHints {
	tier := TierOf(n)
	return StyleHints{Tier: tier, Color: TierColors[tier], Size: n.SizeBytes}
}

// Build assembles the rendering document for g.
//
// Nodes keep the order of g.Nodes; edges keep the order of g.Edges minus
// self-edges. Edges with an endpoint that has no position cannot be drawn;
// they are left out and counted in Layout.Dangling. kinds must be aligned
// with g.Edges, as returned by [layout.EdgeKinds]. Edge ids are "e<index>" with the index into g.Edges,
// so they are stable across layout kinds.
func Build(g *crawl.Graph, res layout.Result, kinds []layout.EdgeKind) Layout {
	out := Layout{
		JobID: g.JobID,
		Kind:  string(res.Kind),
		Nodes: make([]PositionedNode, 0, len(g.Nodes)),
		Edges: make([]ClassifiedEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		p := res.Positions[n.ID]
		out.Nodes = append(out.Nodes, PositionedNode{
			ID:     n.ID,
			X:      p.X,
			Y:      p.Y,
			Label:  n.Label(),
			URL:    n.URL,
			Domain: n.Domain,
			Depth:  n.Depth,
			Style:  HintsFor(n),
		})
	}

	for i, e := range g.Edges {
		if i >= len(kinds) || kinds[i] == "" {
			continue
		}
		if _, ok := res.Positions[e.Source]; !ok {
			out.Dangling++
			continue
		}
		if _, ok := res.Positions[e.Target]; !ok {
			out.Dangling++
			continue
		}
		out.Edges = append(out.Edges, ClassifiedEdge{
			ID:     fmt.Sprintf("e%d", i),
			Source: e.Source,
			Target: e.Target,
			Kind:   string(kinds[i]),
			Label:  e.LinkText,
		})
	}

	lo, hi := res.Bounds()
	out.Bounds = Bounds{MinX: lo.X, MinY: lo.Y, MaxX: hi.X, MaxY: hi.Y}
	return out
}

// BuildFor computes the layout and classification of g and assembles the
// document. An unknown kind is laid out with the fallback and recorded in
// Layout.Requested.
func BuildFor(g *crawl.Graph, kind layout.Kind, opts ...layout.Option) Layout {
	res := layout.Compute(g.Nodes, kind, opts...)
	out := Build(g, res, layout.EdgeKinds(g.Nodes, g.Edges))
	if res.Kind != kind {
		out.Requested = string(kind)
	}
	return out
}
