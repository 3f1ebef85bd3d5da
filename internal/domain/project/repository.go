package project

import (
	"context"
	"errors"
	"time"

	"github.com/honeycarbs/lfx-mentorship/internal/domain"
)

// ErrNoSnapshot is returned when no listing has been stored yet
var ErrNoSnapshot = errors.New("project: no snapshot stored")

// Repository persists and loads projects from storage
type Repository interface {
	// UpsertProjects creates or updates projects keyed by ID
	UpsertProjects(ctx context.Context, projects []domain.Project) error

	// FindByIDs loads full Project records for the given IDs
	FindByIDs(ctx context.Context, ids []domain.ProjectID) ([]domain.Project, error)
}

// Snapshot is a raw listing body kept for offline projection
type Snapshot struct {
	ID        string
	Source    string
	FetchedAt time.Time
	Hits      int
	Body      []byte
}

// SnapshotStore keeps raw listing bodies
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, s Snapshot) error

	// LatestSnapshot returns ErrNoSnapshot when the store is empty
	LatestSnapshot(ctx context.Context) (Snapshot, error)
}
