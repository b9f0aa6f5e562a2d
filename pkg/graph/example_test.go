package graph_test

import (
	"fmt"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/layout"
)

func ExampleBuildFor() {
	g := &crawl.Graph{
		Nodes: []crawl.Node{
			{ID: "home", Depth: 0, SizeBytes: 4096},
			{ID: "docs", Depth: 1, DiscoveryOrder: 1, SizeBytes: 2048},
			{ID: "cdn", Depth: 1, DiscoveryOrder: 2},
		},
		Edges: []crawl.Edge{
			{Source: "home", Target: "docs"},
			{Source: "docs", Target: "home"},
		},
	}

	l := graph.BuildFor(g, layout.Hierarchical)
	for _, n := range l.Nodes {
		fmt.Printf("%s %s (%.0f, %.0f)\n", n.ID, n.Style.Tier, n.X, n.Y)
	}
	for _, e := range l.Edges {
		fmt.Printf("%s %s->%s %s\n", e.ID, e.Source, e.Target, e.Kind)
	}
	// Output:
	// home root (0, 0)
	// docs depth1 (-125, 200)
	// cdn external (125, 200)
	// e0 home->docs hierarchical
	// e1 docs->home cross-link
}
