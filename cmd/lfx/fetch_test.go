package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/lfx-mentorship/internal/config"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/storage/sqlite"
	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

const upstreamBody = `{"hits":{"hits":[{"_source":{"name":"Proj1","repoLink":"https://x","industry":"Tech","description":"d",
	"apprenticeNeeds":{"skills":["Go","Rust"],"mentors":[{"name":"A","email":"a@x.com","introduction":"hi"}]},
	"programTerms":[{"activeUsers":5,"name":"T1","Active":true}]}}]}}`

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()

	var cfg config.Config
	cfg.LFX.BaseURL = baseURL
	cfg.LFX.PageSize = 100
	cfg.LFX.Timeout = 5 * time.Second
	cfg.LFX.RateBurst = 1
	cfg.LFX.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.LFX.CSVFile = lfx.DefaultCSVFile
	cfg.LFX.JSONFile = lfx.DefaultJSONFile
	return cfg
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, upstreamBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAndSave_Live(t *testing.T) {
	cfg := testConfig(t, newUpstream(t).URL)
	var out bytes.Buffer

	err := fetchAndSave(context.Background(), cfg, logging.NewNop(), fetchOptions{Format: "csv"}, &out)
	require.NoError(t, err)

	path := filepath.Join(cfg.LFX.DataDir, lfx.DefaultCSVFile)
	assert.Equal(t, path, strings.TrimSpace(out.String()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "name,repository,industry,description,skills,mentors,programTerms\r\n"))
	assert.Contains(t, string(data), "A (a@x.com): hi")
}

func TestFetchAndSave_OutOverridesDataDir(t *testing.T) {
	cfg := testConfig(t, newUpstream(t).URL)
	outDir := filepath.Join(t.TempDir(), "elsewhere")
	var out bytes.Buffer

	err := fetchAndSave(context.Background(), cfg, logging.NewNop(), fetchOptions{Out: outDir}, &out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, lfx.DefaultCSVFile))
	assert.FileExists(t, filepath.Join(outDir, lfx.DefaultJSONFile))
	assert.NoDirExists(t, cfg.LFX.DataDir)
}

func TestFetchAndSave_BadFormat(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	err := fetchAndSave(context.Background(), cfg, logging.NewNop(), fetchOptions{Format: "xlsx"}, io.Discard)
	require.Error(t, err)
}

func TestFetchAndSave_OfflineRequiresSnapshotDB(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	err := fetchAndSave(context.Background(), cfg, logging.NewNop(), fetchOptions{Offline: true}, io.Discard)
	require.ErrorContains(t, err, "LFX_SNAPSHOT_DB_PATH")
}

func TestFetchAndSave_OfflineUsesLatestSnapshot(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.LFX.SnapshotDB = filepath.Join(t.TempDir(), "lfx.db")
	ctx := context.Background()

	store, err := sqlite.Open(ctx, cfg.LFX.SnapshotDB)
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(ctx, project.Snapshot{
		ID: "s1", Source: "lfx", FetchedAt: time.Now().UTC(), Hits: 1, Body: []byte(upstreamBody),
	}))
	require.NoError(t, store.Close())

	err = fetchAndSave(ctx, cfg, logging.NewNop(), fetchOptions{Format: "json"}, io.Discard)
	require.Error(t, err, "live fetch against a closed port must fail")

	err = fetchAndSave(ctx, cfg, logging.NewNop(), fetchOptions{Format: "json", Offline: true}, io.Discard)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.LFX.DataDir, lfx.DefaultJSONFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Proj1"`)
}

func TestFetchAndSave_OfflineEmptySnapshotStore(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.LFX.SnapshotDB = filepath.Join(t.TempDir(), "lfx.db")

	err := fetchAndSave(context.Background(), cfg, logging.NewNop(), fetchOptions{Offline: true}, io.Discard)
	require.ErrorContains(t, err, "lfx sync")
}
