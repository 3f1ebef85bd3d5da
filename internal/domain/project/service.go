package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/lfx-mentorship/internal/domain"
	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

type Service interface {
	// Fetch pulls the live listing without storing anything
	Fetch(ctx context.Context) (Batch, error)

	// Sync fetches once, stores the snapshot and projects, and summarizes them
	Sync(ctx context.Context) (domain.SyncResult, error)

	// Latest rebuilds the most recently stored listing
	Latest(ctx context.Context) (Batch, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	source    Source
	repo      Repository
	snapshots SnapshotStore
	logger    *logging.Logger
	clock     func() time.Time
	newID     func() string
}

// WithSource sets the listing source
func WithSource(source Source) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithRepository sets the project repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithSnapshots sets the raw snapshot store
func WithSnapshots(store SnapshotStore) Option {
	return func(c *config) {
		c.snapshots = store
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithIDGenerator sets the snapshot ID generator
func WithIDGenerator(fn func() string) Option {
	return func(c *config) {
		c.newID = fn
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source == nil {
		return nil, fmt.Errorf("project.Service: source is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		source:    cfg.source,
		repo:      cfg.repo,
		snapshots: cfg.snapshots,
		logger:    cfg.logger,
		clock:     cfg.clock,
		newID:     cfg.newID,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible).
// repo and snapshots may be nil.
func NewServiceWithDeps(source Source, repo Repository, snapshots SnapshotStore, logger *logging.Logger) (Service, error) {
	return NewService(
		WithSource(source),
		WithRepository(repo),
		WithSnapshots(snapshots),
		WithLogger(logger),
	)
}

type service struct {
	source    Source
	repo      Repository
	snapshots SnapshotStore
	logger    *logging.Logger
	clock     func() time.Time
	newID     func() string
}

func (s *service) Fetch(ctx context.Context) (Batch, error) {
	batch, err := s.source.Fetch(ctx)
	if err != nil {
		return Batch{}, fmt.Errorf("fetch %s listing: %w", s.source.Name(), err)
	}
	return batch, nil
}

// Sync fetches the listing once and persists it to the configured stores
func (s *service) Sync(ctx context.Context) (domain.SyncResult, error) {
	batch, err := s.Fetch(ctx)
	if err != nil {
		return domain.SyncResult{}, err
	}

	fetchedAt := batch.Listing.FetchedAt()
	if fetchedAt.IsZero() {
		fetchedAt = s.clock().UTC()
	}

	result := domain.SyncResult{
		Projects:  Summarize(batch.Projects),
		FetchedAt: fetchedAt,
	}

	if s.snapshots != nil {
		snap := Snapshot{
			ID:        s.newID(),
			Source:    s.source.Name(),
			FetchedAt: fetchedAt,
			Hits:      batch.Listing.Len(),
			Body:      batch.Listing.Raw(),
		}
		if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
			return domain.SyncResult{}, fmt.Errorf("save snapshot: %w", err)
		}
		result.SnapshotID = snap.ID
		result.Stored = true
		s.logger.Debug("snapshot saved", "snapshot_id", snap.ID, "hits", snap.Hits)
	}

	if s.repo != nil && len(batch.Projects) > 0 {
		if err := s.repo.UpsertProjects(ctx, batch.Projects); err != nil {
			return domain.SyncResult{}, fmt.Errorf("upsert projects: %w", err)
		}
		result.Stored = true
	}

	s.logger.Info("sync completed",
		"source", s.source.Name(),
		"projects", len(batch.Projects),
		"stored", result.Stored,
	)

	return result, nil
}

// Latest returns ErrNoSnapshot when no snapshot store is configured or it is empty
func (s *service) Latest(ctx context.Context) (Batch, error) {
	if s.snapshots == nil {
		return Batch{}, ErrNoSnapshot
	}

	snap, err := s.snapshots.LatestSnapshot(ctx)
	if err != nil {
		return Batch{}, err
	}

	listing, err := lfx.ParseListing(snap.Body, snap.FetchedAt)
	if err != nil {
		return Batch{}, fmt.Errorf("parse snapshot %s: %w", snap.ID, err)
	}

	source := snap.Source
	if source == "" {
		source = s.source.Name()
	}

	projects, err := FromListing(source, listing)
	if err != nil {
		return Batch{}, err
	}

	return Batch{Listing: listing, Projects: projects}, nil
}
