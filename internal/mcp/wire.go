//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/lfx-mentorship/internal/config"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/analysis"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	lfxsource "github.com/honeycarbs/lfx-mentorship/internal/domain/project/sources/lfx"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Upstream
		NewLFXClient,
		lfxsource.NewSource,
		wire.Bind(new(project.Source), new(*lfxsource.Source)),

		// Storage
		provideNeo4jClient,
		provideProjectRepository,
		provideProjectGraph,
		OpenSnapshots,
		provideSnapshotStore,

		// Services
		project.NewServiceWithDeps,
		analysis.NewService,

		// Export
		provideSheetsExporter,
		FileTarget,

		newResources,
	)

	return nil, nil, nil
}
