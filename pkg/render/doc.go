// Package render provides output formats for crawl graph layouts.
//
// # Overview
//
// A computed [graph.Layout] can be delivered in several formats:
//
//   - json: the layout document itself, for interactive surfaces
//   - dot: Graphviz source with every node pinned at its position
//   - svg: the DOT source rendered by Graphviz
//   - png: a raster of the same drawing
//
// This package holds the [Format] type shared by the renderers and the HTTP
// layer. The drawing itself lives in the [nodelink] subpackage.
//
//	f, err := render.ParseFormat("svg")
//	out, err := nodelink.Render(ctx, layout, f, nodelink.Options{})
//
// [graph.Layout]: github.com/matzehuels/crawlviz/pkg/graph.Layout
// [nodelink]: github.com/matzehuels/crawlviz/pkg/render/nodelink
package render
