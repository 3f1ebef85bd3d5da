package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.mentorship.lfx.linuxfoundation.org", cfg.LFX.BaseURL)
	assert.Equal(t, 100, cfg.LFX.PageSize)
	assert.Equal(t, 30*time.Second, cfg.LFX.Timeout)
	assert.Equal(t, "data", cfg.LFX.DataDir)
	assert.Equal(t, "LFX_mentorship.csv", cfg.LFX.CSVFile)
	assert.Equal(t, "LFX_mentorship.json", cfg.LFX.JSONFile)
	assert.False(t, cfg.Neo4jEnabled())
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LFX_DATA_DIR", "/tmp/lfx")
	t.Setenv("LFX_TIMEOUT", "5s")
	t.Setenv("LFX_PAGE_SIZE", "50")
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")
	t.Setenv("NEO4J_USERNAME", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/lfx", cfg.LFX.DataDir)
	assert.Equal(t, 5*time.Second, cfg.LFX.Timeout)
	assert.Equal(t, 50, cfg.LFX.PageSize)
	assert.True(t, cfg.Neo4jEnabled())
}

func TestLoad_Neo4jPartialConfig(t *testing.T) {
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_USERNAME")
	assert.Contains(t, err.Error(), "NEO4J_PASSWORD")
}

func TestLoad_SheetsRequiresSpreadsheet(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SHEETS_SPREADSHEET_ID")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad level", "LOG_LEVEL", "loud"},
		{"zero page size", "LFX_PAGE_SIZE", "0"},
		{"bad base url", "LFX_BASE_URL", "not a url"},
		{"unparseable timeout", "LFX_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
