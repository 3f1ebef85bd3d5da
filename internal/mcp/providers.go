package mcp

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/honeycarbs/lfx-mentorship/internal/config"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/export/files"
	sheetsexport "github.com/honeycarbs/lfx-mentorship/internal/export/sheets"
	"github.com/honeycarbs/lfx-mentorship/internal/repository"
	storage "github.com/honeycarbs/lfx-mentorship/internal/storage/neo4j"
	"github.com/honeycarbs/lfx-mentorship/internal/storage/sqlite"
	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
	n4j "github.com/honeycarbs/lfx-mentorship/pkg/neo4j"
	sheetsclient "github.com/honeycarbs/lfx-mentorship/pkg/sheets"
)

// NewLFXClient builds the upstream client from config, throttled when a rate is set
func NewLFXClient(cfg config.Config) (*lfx.Client, error) {
	lfxCfg := lfx.Config{
		BaseURL:  cfg.LFX.BaseURL,
		Timeout:  cfg.LFX.Timeout,
		PageSize: cfg.LFX.PageSize,
	}
	if cfg.LFX.RatePerSec > 0 {
		lfxCfg.Limiter = rate.NewLimiter(rate.Limit(cfg.LFX.RatePerSec), cfg.LFX.RateBurst)
	}
	return lfx.NewClient(lfxCfg)
}

// OpenSnapshots opens the snapshot database; nil when LFX_SNAPSHOT_DB_PATH is unset
func OpenSnapshots(ctx context.Context, cfg config.Config) (*sqlite.SnapshotRepository, func(), error) {
	if cfg.LFX.SnapshotDB == "" {
		return nil, func() {}, nil
	}

	repo, err := sqlite.Open(ctx, cfg.LFX.SnapshotDB)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}

// FileTarget maps the data directory settings
func FileTarget(cfg config.Config) files.Target {
	return files.Target{
		Dir:      cfg.LFX.DataDir,
		CSVFile:  cfg.LFX.CSVFile,
		JSONFile: cfg.LFX.JSONFile,
	}
}

// provideNeo4jClient connects to Neo4j and ensures constraints; nil when not configured
func provideNeo4jClient(ctx context.Context, cfg config.Config, logger *logging.Logger) (*n4j.Client, func(), error) {
	if !cfg.Neo4jEnabled() {
		logger.Info("neo4j not configured, graph storage disabled")
		return nil, func() {}, nil
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := client.EnsureSchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, nil, fmt.Errorf("neo4j schema: %w", err)
	}

	logger.Info("neo4j connected", "uri", cfg.Neo4j.URI)
	return client, func() { _ = client.Close(context.Background()) }, nil
}

// The providers below return untyped nil interfaces for absent backends so
// services can compare against nil.

func provideProjectRepository(client *n4j.Client) project.Repository {
	if client == nil {
		return nil
	}
	return storage.NewProjectRepository(client)
}

func provideProjectGraph(client *n4j.Client) repository.ProjectGraph {
	if client == nil {
		return nil
	}
	return storage.NewGraphRepository(client)
}

func provideSnapshotStore(repo *sqlite.SnapshotRepository) project.SnapshotStore {
	if repo == nil {
		return nil
	}
	return repo
}

func provideSheetsExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sheetsexport.Exporter, error) {
	if !cfg.SheetsEnabled() {
		logger.Info("google sheets not configured, sheets_export disabled")
		return nil, nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, err
	}
	return sheetsexport.NewExporter(client, cfg.Sheets.SpreadsheetID, cfg.Sheets.Tab)
}
