package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/lfx-mentorship/internal/mcp"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the listing once and store it",
	Long:  "Fetches the listing and stores the raw snapshot (LFX_SNAPSHOT_DB_PATH) and the project graph (NEO4J_URI) when configured.",
	RunE:  runSync,
}

var syncKeep int

func init() {
	syncCmd.Flags().IntVar(&syncKeep, "keep", 0, "Prune stored snapshots down to the newest N (0 keeps all)")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
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
	defer cleanup()

	result, err := res.Projects.Sync(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "fetched %d project(s) at %s\n", len(result.Projects), result.FetchedAt.Format(time.RFC3339))
	if result.SnapshotID != "" {
		fmt.Fprintf(out, "snapshot %s\n", result.SnapshotID)
	}
	if !result.Stored {
		fmt.Fprintln(out, "nothing stored: set LFX_SNAPSHOT_DB_PATH or NEO4J_URI")
	}

	if syncKeep > 0 && res.Snapshots != nil {
		removed, err := res.Snapshots.Prune(ctx, syncKeep)
		if err != nil {
			return err
		}
		logger.Info("snapshots pruned", "removed", removed, "keep", syncKeep)
	}

	return nil
}
