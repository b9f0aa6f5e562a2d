package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/pipeline"
	"github.com/matzehuels/crawlviz/pkg/render"
)

// layoutSuffix marks files written by the layout command.
const layoutSuffix = ".layout.json"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		edgeLabels bool
		detailed   bool
		flags      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json | file.layout.json]",
		Short: "Render a crawl graph to SVG, PNG, DOT or JSON",
		Long: `Render a crawl graph to SVG, PNG, DOT or JSON.

A crawl graph is laid out first; a *.layout.json file written by 'layout'
is rendered as is. Several formats can be requested at once:

  crawlviz render crawl.json -t circular -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			opts.Formats = parseFormats(formatsStr)
			if cmd.Flags().Changed("edge-labels") {
				opts.EdgeLabels = edgeLabels
			}
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = detailed
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&edgeLabels, "edge-labels", false, "label edges with their link text")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show depth and size in node labels")
	flags.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender lays out (unless given a layout file) and renders input.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, nil, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading graph...")
	spinner.Start()
	defer spinner.Stop()

	l, nodes, edges, cached, err := c.loadLayout(ctx, runner, input, opts, spinner)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}

	spinner.Update(fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	base := outputBase(strings.TrimSuffix(input, layoutSuffix), output)
	paths, err := writeArtifacts(base, artifacts)
	if err != nil {
		return err
	}

	c.printSuccess("Rendered %s layout", l.Kind)
	c.warnLayout(l)
	for _, p := range paths {
		c.printFile(p)
	}
	c.printStats(nodes, edges, cached && renderHit)
	return nil
}

// loadLayout returns the layout for input with node and edge counts.
func (c *CLI) loadLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options, spinner *Spinner) (graph.Layout, int, int, bool, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		l, err := graph.ReadLayoutFile(input)
		if err != nil {
			return graph.Layout{}, 0, 0, false, fmt.Errorf("load layout %s: %w", input, err)
		}
		return l, len(l.Nodes), len(l.Edges), true, nil
	}

	g, err := crawl.ReadGraphFile(input)
	if err != nil {
		return graph.Layout{}, 0, 0, false, fmt.Errorf("load graph %s: %w", input, err)
	}
	spinner.Update("Computing layout...")
	l, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return graph.Layout{}, 0, 0, false, fmt.Errorf("compute layout: %w", err)
	}
	return l, g.NodeCount(), g.EdgeCount(), hit, nil
}

// writeArtifacts writes each artifact to base plus the format extension
// and returns the written paths in a stable order.
func writeArtifacts(base string, artifacts map[string][]byte) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + render.Format(f).Extension()
		if f == string(render.FormatJSON) {
			path = base + layoutSuffix
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
