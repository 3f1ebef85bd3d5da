package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/lfx-mentorship/internal/config"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/export/files"
	"github.com/honeycarbs/lfx-mentorship/internal/mcp"
	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the project listing and write CSV/JSON files",
	Long:  "Fetches the open LFX Mentorship projects once and writes them to the data directory. With --offline the latest stored snapshot is used instead of the API.",
	RunE:  runFetch,
}

type fetchOptions struct {
	Out     string
	Format  string
	Offline bool
}

var fetchOpts fetchOptions

func init() {
	fetchCmd.Flags().StringVarP(&fetchOpts.Out, "out", "o", "", "Output directory (overrides LFX_DATA_DIR)")
	fetchCmd.Flags().StringVarP(&fetchOpts.Format, "format", "f", files.FormatBoth, "Output format: csv, json or both")
	fetchCmd.Flags().BoolVar(&fetchOpts.Offline, "offline", false, "Use the latest stored snapshot instead of calling the API")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return fetchAndSave(cmd.Context(), cfg, logger, fetchOpts, cmd.OutOrStdout())
}

// fetchAndSave loads one listing and writes it, printing each written path to w
func fetchAndSave(ctx context.Context, cfg config.Config, logger *logging.Logger, opts fetchOptions, w io.Writer) error {
	format, err := files.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	target := mcp.FileTarget(cfg)
	if opts.Out != "" {
		target.Dir = opts.Out
	}

	listing, err := loadListing(ctx, cfg, opts.Offline)
	if err != nil {
		return err
	}

	paths, err := files.Save(ctx, listing, target, format)
	if err != nil {
		return err
	}

	logger.Info("listing saved", "records", listing.Len(), "files", paths, "offline", opts.Offline)
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}

func loadListing(ctx context.Context, cfg config.Config, offline bool) (*lfx.Listing, error) {
	if !offline {
		client, err := mcp.NewLFXClient(cfg)
		if err != nil {
			return nil, err
		}
		return client.Fetch(ctx)
	}

	if cfg.LFX.SnapshotDB == "" {
		return nil, fmt.Errorf("--offline requires LFX_SNAPSHOT_DB_PATH")
	}

	store, cleanup, err := mcp.OpenSnapshots(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	snap, err := store.LatestSnapshot(ctx)
	if errors.Is(err, project.ErrNoSnapshot) {
		return nil, fmt.Errorf("no stored snapshot, run `lfx sync` first")
	}
	if err != nil {
		return nil, err
	}

	return lfx.ParseListing(snap.Body, snap.FetchedAt)
}
