package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config contains runtime settings for the CLI and the MCP server
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	Host     string `env:"MCP_HOST" envDefault:"0.0.0.0"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required,numeric"`

	LFX struct {
		BaseURL     string        `env:"BASE_URL" envDefault:"https://api.mentorship.lfx.linuxfoundation.org" validate:"required,url"`
		PageSize    int           `env:"PAGE_SIZE" envDefault:"100" validate:"gt=0,lte=1000"`
		Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s" validate:"gt=0"`
		RatePerSec  float64       `env:"RATE_PER_SEC" envDefault:"1" validate:"gte=0"`
		RateBurst   int           `env:"RATE_BURST" envDefault:"1" validate:"gte=1"`
		DataDir     string        `env:"DATA_DIR" envDefault:"data" validate:"required"`
		CSVFile     string        `env:"CSV_FILE" envDefault:"LFX_mentorship.csv" validate:"required"`
		JSONFile    string        `env:"JSON_FILE" envDefault:"LFX_mentorship.json" validate:"required"`
		SnapshotDB  string        `env:"SNAPSHOT_DB_PATH"`
		SyncEnabled bool          `env:"SYNC_ON_START" envDefault:"false"`
	} `envPrefix:"LFX_"`

	Neo4j struct {
		URI      string `env:"URI" validate:"omitempty,uri"`
		Username string `env:"USERNAME"`
		Password string `env:"PASSWORD"`
	} `envPrefix:"NEO4J_"`

	Sheets struct {
		CredentialsPath string `env:"CREDENTIALS_PATH"`
		SpreadsheetID   string `env:"SPREADSHEET_ID"`
		Tab             string `env:"TAB" envDefault:"Projects"`
	} `envPrefix:"GOOGLE_SHEETS_"`
}

// Neo4jEnabled reports whether graph storage is configured
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// SheetsEnabled reports whether Google Sheets export is configured
func (c Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != ""
}

// Load populates config from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks field ranges and the all-or-none optional sections
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Neo4jEnabled() {
		var missingVars []string
		if c.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if c.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
		if len(missingVars) > 0 {
			return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
		}
	}

	if c.SheetsEnabled() && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("missing required environment variables: GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	return nil
}
