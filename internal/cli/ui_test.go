package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crawlviz/pkg/graph"
)

func TestEdgeTable(t *testing.T) {
	l := graph.Layout{Edges: []graph.ClassifiedEdge{
		{ID: "e0", Source: "a", Target: "b", Kind: graph.EdgeHierarchical, Label: "About"},
		{ID: "e1", Source: "b", Target: "a", Kind: graph.EdgeCrossLink},
		{ID: "e2", Source: "a", Target: "c", Kind: graph.EdgeHierarchical},
	}}

	full := edgeTable(l, 0)
	for _, want := range []string{"Edge", "Link text", "About", "cross-link", "e2"} {
		if !strings.Contains(full, want) {
			t.Errorf("table missing %q:\n%s", want, full)
		}
	}

	limited := edgeTable(l, 2)
	if strings.Contains(limited, "e2") || !strings.Contains(limited, "1 more") {
		t.Errorf("limited table:\n%s", limited)
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	c.SetOutput(&buf)

	c.printStats(4, 3, true)
	c.printStats(4, 3, false)

	out := buf.String()
	if !strings.Contains(out, "4 nodes") || !strings.Contains(out, iconCached) || !strings.Contains(out, iconFresh) {
		t.Errorf("stats output = %q", out)
	}
}
