package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/pipeline"
)

// fetchCommand creates the fetch command, which downloads a job's graph
// from the configured source.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output  string
		kind    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [job-id]",
		Short: "Download a crawl job's graph from the configured source",
		Long: `Download a crawl job's graph from the configured source.

The source comes from the [source] table of the config file or the
CRAWLVIZ_SOURCE_* environment variables; --source overrides its kind.
The graph is written in the crawler's JSON wire format to <job-id>.json,
or to stdout with -o -.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("source") {
				c.Config.Source.Kind = kind
			}
			return c.runFetch(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <job-id>.json, - for stdout)")
	cmd.Flags().StringVar(&kind, "source", "", "source kind: file, http, sqlite, mongo")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always read from the source")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, jobID, output string, noCache bool) error {
	src, err := c.openSource(ctx)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	runner, err := c.newRunner(ctx, src, noCache)
	if err != nil {
		src.Close()
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	g, hit, err := runner.LoadWithCacheInfo(ctx, pipeline.Options{JobID: jobID, Refresh: noCache, Logger: c.Logger})
	if err != nil {
		return err
	}
	prog.done("fetched crawl graph", "job", jobID, "source", src.Name())

	if output == "-" {
		return crawl.WriteGraph(g, c.out)
	}
	if output == "" {
		output = jobID + ".json"
	}
	if err := crawl.WriteGraphFile(g, output); err != nil {
		return err
	}

	c.printSuccess("Fetched %s", jobID)
	c.printFile(output)
	c.printStats(g.NodeCount(), g.EdgeCount(), hit)
	c.printNewline()
	c.printNextStep("Render", appName+" render "+output)
	return nil
}

