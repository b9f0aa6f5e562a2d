// Package nodelink draws crawl graph layouts as node-link diagrams.
//
// # Overview
//
// Positions come from [layout.Compute]; Graphviz only draws. [ToDOT] pins
// every node at its computed position and the neato engine is asked to keep
// them, so the SVG and PNG outputs match what interactive surfaces show for
// the same layout kind.
//
// # Usage
//
//	l := graph.BuildFor(g, layout.Circular)
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Or pick the format at runtime:
//
//	out, err := nodelink.Render(ctx, l, render.FormatPNG, nodelink.Options{EdgeLabels: true})
//
// # Styling
//
// Nodes are filled with their tier color from [graph.TierColors]; external
// pages get a dashed outline. Hierarchical edges are solid and cross-links
// dashed grey.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering. No external binaries are needed.
//
// [layout.Compute]: github.com/matzehuels/crawlviz/pkg/layout.Compute
// [graph.TierColors]: github.com/matzehuels/crawlviz/pkg/graph.TierColors
package nodelink
