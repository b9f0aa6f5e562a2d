package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crawlviz/internal/api"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Layouts are computed from the configured crawl source. When the source
fails after a job was loaded once, the last good layout is served with
"stale": true and the error text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	src, err := c.openSource(ctx)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	runner, err := c.newRunner(ctx, src, false)
	if err != nil {
		src.Close()
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := c.Config.Server
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewServer(runner, c.baseOptions(), logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown", "err", err)
		}
	}()

	logger.Info("api server listening", "addr", cfg.Addr, "source", src.Name())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("api server stopped")
	return ctx.Err()
}
