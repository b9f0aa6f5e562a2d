package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/layout"
	"github.com/matzehuels/crawlviz/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := &crawl.Graph{
		Nodes: []crawl.Node{
			{ID: "home", Depth: 0, SizeBytes: 1},
			{ID: "about", Depth: 1, DiscoveryOrder: 1, SizeBytes: 1},
		},
		Edges: []crawl.Edge{{Source: "home", Target: "about"}},
	}

	dot := nodelink.ToDOT(graph.BuildFor(g, layout.Hierarchical), nodelink.Options{Scale: 1})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "pos=") {
			fmt.Println(strings.TrimSpace(line[:strings.Index(line, ", fillcolor")]))
		}
	}
	// Output:
	// "home" [label="home", pos="0,0!"
	// "about" [label="about", pos="0,-200!"
}
