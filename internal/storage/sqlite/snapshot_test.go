package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
)

func openTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()

	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "lfx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestLatestSnapshot_Empty(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.LatestSnapshot(context.Background())
	require.ErrorIs(t, err, project.ErrNoSnapshot)
}

func TestSaveAndLatestSnapshot(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	older := project.Snapshot{ID: "a", Source: "lfx", FetchedAt: base, Hits: 1, Body: []byte(`{"hits":{"hits":[]}}`)}
	newer := project.Snapshot{ID: "b", Source: "lfx", FetchedAt: base.Add(time.Hour), Hits: 2, Body: []byte(`{"hits":{"hits":[{}, {}]}}`)}

	require.NoError(t, repo.SaveSnapshot(ctx, newer))
	require.NoError(t, repo.SaveSnapshot(ctx, older))

	got, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestSaveSnapshot_SameIDReplaces(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveSnapshot(ctx, project.Snapshot{ID: "a", Source: "lfx", FetchedAt: at, Hits: 1, Body: []byte("1")}))
	require.NoError(t, repo.SaveSnapshot(ctx, project.Snapshot{ID: "a", Source: "lfx", FetchedAt: at, Hits: 3, Body: []byte("3")}))

	got, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Hits)
	assert.Equal(t, []byte("3"), got.Body)
}

func TestPrune(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.SaveSnapshot(ctx, project.Snapshot{
			ID: id, Source: "lfx", FetchedAt: base.Add(time.Duration(i) * time.Minute), Body: []byte("{}"),
		}))
	}

	removed, err := repo.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	got, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)
}
