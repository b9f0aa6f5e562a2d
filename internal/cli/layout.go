package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/layout"
	"github.com/matzehuels/crawlviz/pkg/pipeline"
)

// layoutFlags are the layout options shared by layout, render and edges.
// They are applied on top of the config file only when set explicitly.
type layoutFlags struct {
	kind       string
	hspace     float64
	vspace     float64
	baseRadius float64
	depthInc   float64
	ringSpace  float64
	cellSize   float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", "", fmt.Sprintf("layout kind: %s (unknown kinds fall back to grid)", kindList()))
	cmd.Flags().Float64Var(&f.hspace, "hspace", 0, "hierarchical: horizontal spacing between siblings")
	cmd.Flags().Float64Var(&f.vspace, "vspace", 0, "hierarchical: vertical spacing between depths")
	cmd.Flags().Float64Var(&f.baseRadius, "base-radius", 0, "circular: radius of depth 1")
	cmd.Flags().Float64Var(&f.depthInc, "depth-increment", 0, "circular: radius added per depth")
	cmd.Flags().Float64Var(&f.ringSpace, "ring-spacing", 0, "force: distance between depth rings")
	cmd.Flags().Float64Var(&f.cellSize, "cell-size", 0, "grid: cell size")
	_ = cmd.RegisterFlagCompletionFunc("type", completeKinds)
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("type") {
		opts.Kind = f.kind
	}
	set := func(name string, dst *float64, v float64) {
		if changed(name) {
			*dst = v
		}
	}
	set("hspace", &opts.HorizontalSpacing, f.hspace)
	set("vspace", &opts.VerticalSpacing, f.vspace)
	set("base-radius", &opts.BaseRadius, f.baseRadius)
	set("depth-increment", &opts.DepthIncrement, f.depthInc)
	set("ring-spacing", &opts.RingSpacing, f.ringSpace)
	set("cell-size", &opts.CellSize, f.cellSize)
}

func kindList() string {
	kinds := layout.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// layoutCommand creates the layout command for computing layout descriptors.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		pick    bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a layout descriptor from a crawl graph",
		Long: `Compute a layout descriptor from a crawl graph.

The layout command reads a crawl graph in the crawler's JSON wire format,
classifies its edges, positions every node and writes the descriptor
(the same document as 'render -f json') to <input>.layout.json.

Use --pick to choose the layout kind interactively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			if pick {
				kind, err := pickKind(opts.Kind)
				if err != nil {
					return err
				}
				if kind == "" {
					c.printInfo("Cancelled")
					return nil
				}
				opts.Kind = kind
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the layout kind interactively")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := crawl.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, nil, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(input, "") + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.printSuccess("%s layout complete", l.Kind)
	c.warnLayout(l)
	c.printFile(outputPath)
	c.printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	c.printNewline()
	c.printNextStep("Render", appName+" render "+input+" -t "+l.Kind)

	return nil
}

// warnLayout reports fallbacks and dropped edges.
func (c *CLI) warnLayout(l graph.Layout) {
	if l.IsFallback() {
		c.printWarning("Unknown layout kind %q, used %s", l.Requested, l.Kind)
	}
	if l.Dangling > 0 {
		c.printWarning("%d edges reference pages missing from the graph", l.Dangling)
	}
}
