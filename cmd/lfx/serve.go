package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/lfx-mentorship/internal/mcp"
	"github.com/honeycarbs/lfx-mentorship/pkg/shutdown"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project tools over MCP streamable HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize resources: %w", err)
	}
	// closes the Neo4j driver and the sqlite pool
	release := shutdown.Once(cleanup)
	defer func() { _ = release(context.Background()) }()

	if cfg.LFX.SyncEnabled {
		if _, err := res.Projects.Sync(ctx); err != nil {
			logger.Warn("initial sync failed", "err", err)
		}
	}

	srv := mcp.NewServer(logger, cfg, *res)

	go func() {
		_ = shutdown.Graceful(ctx,
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			shutdownTimeout,
			logger,
			srv,
			release,
		)
	}()

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		return err
	}

	logger.Info("MCP server stopped")
	return nil
}
