// Package pkg holds the crawlviz libraries that turn a web crawl into a
// drawable site map.
//
// # Overview
//
// A crawl job produces a graph of pages (nodes) and the links between them
// (edges). crawlviz loads that graph from a crawl store, positions every
// page with one of several layout algorithms, tags each link as a
// discovery link or a cross-link, and hands the result to a rendering
// surface as JSON, Graphviz DOT, SVG or PNG.
//
// # Architecture
//
//	crawl store (file, http, sqlite, mongo)
//	         ↓
//	    [source] package (load a job's graph)
//	         ↓
//	    [crawl] package (validate, hash)
//	         ↓
//	    [layout] package (positions + edge classification)
//	         ↓
//	    [graph] package (layout document)
//	         ↓
//	    [render] package (json, dot, svg, png)
//
// [pipeline] runs these stages with a [cache] in front of each one, and
// keeps the last good layout per job so a failed refresh still has
// something to draw.
//
// # Quick Start
//
//	src, _ := source.Open(ctx, source.Config{Kind: source.KindFile, Dir: "crawls"})
//	r := pipeline.NewRunner(src, cache.NewNullCache(), nil, logger)
//	defer r.Close()
//
//	res, err := r.Execute(ctx, pipeline.Options{JobID: "job-1", Formats: []string{"svg"}})
//
// [source]: https://pkg.go.dev/github.com/matzehuels/crawlviz/pkg/source
// [crawl]: https://pkg.go.dev/github.com/matzehuels/crawlviz/pkg/crawl
// [layout]: https://pkg.go.dev/github.com/matzehuels/crawlviz/pkg/layout
// [graph]: https://pkg.go.dev/github.com/matzehuels/crawlviz/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/crawlviz/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/crawlviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/crawlviz/pkg/cache
package pkg
