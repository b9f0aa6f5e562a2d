package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/graph"
)

// edgesCommand creates the edges command, which prints how each link of a
// crawl graph is drawn.
func (c *CLI) edgesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "edges [graph.json]",
		Short: "Classify the links of a crawl graph",
		Long: `Classify the links of a crawl graph.

A link is hierarchical when it leads from a page to one it discovered
(the parent is the first discoverer one level up); every other link is a
cross-link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdges(cmd.Context(), args[0], limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows to print (0 for all)")
	return cmd
}

func (c *CLI) runEdges(ctx context.Context, input string, limit int) error {
	g, err := crawl.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, nil, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	l, err := runner.GenerateLayout(ctx, g, c.baseOptions())
	if err != nil {
		return fmt.Errorf("classify edges: %w", err)
	}

	fmt.Fprintln(c.out, edgeTable(l, limit))
	c.printNewline()
	c.printKeyValue("Pages", strconv.Itoa(g.NodeCount()))
	c.printKeyValue("Hierarchical", strconv.Itoa(l.CountEdges(graph.EdgeHierarchical)))
	c.printKeyValue("Cross-links", strconv.Itoa(l.CountEdges(graph.EdgeCrossLink)))
	if l.Dangling > 0 {
		c.printKeyValue("Dangling", strconv.Itoa(l.Dangling))
	}
	return nil
}
