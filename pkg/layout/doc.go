// Package layout positions crawl nodes on a 2D plane and classifies the
// discovery edges between them.
//
// # Layout Kinds
//
//   - [Hierarchical]: one row per crawl depth, centered on x=0
//   - [Force]: index-based angular placement, radius growing with depth
//   - [Circular]: one concentric ring per crawl depth
//   - [Grid]: square-ish grid in input order
//
// [Compute] is pure and total: the same input always yields bit-identical
// positions, empty input yields an empty [Result], and an unknown kind
// falls back to [Grid] so the caller always receives a complete position
// set. "Force" is an approximation, not a spring simulation, which keeps
// results reproducible.
//
// # Edge Classification
//
// [Classify] splits edges into hierarchical edges (a page discovering a
// page one level deeper; the earliest-discovered source wins) and
// cross-links (everything else). Self-edges are dropped.
//
// # Usage
//
//	res := layout.Compute(g.Nodes, layout.Hierarchical)
//	p := res.Positions["seed"] // {X: 0, Y: 0}
//
//	cls := layout.Classify(g.Nodes, g.Edges)
//	for _, e := range cls.CrossLink { ... }
package layout
