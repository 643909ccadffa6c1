package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Scraper  ScraperConfig  `yaml:"scraper" envconfig:"SCRAPER"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	// Pipeline runs triggered from the dashboard can take minutes per year
	// scraped, so they get their own timeout.
	OperationTimeout time.Duration `yaml:"operation_timeout" envconfig:"OPERATION_TIMEOUT" default:"30m"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/draftpulse.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// ScraperConfig controls how Pro Football Reference is fetched.
type ScraperConfig struct {
	BaseURL   string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://www.pro-football-reference.com"`
	FromYear  int           `yaml:"from_year" envconfig:"FROM_YEAR" default:"2010"`
	ToYear    int           `yaml:"to_year" envconfig:"TO_YEAR" default:"2024"`
	Delay     time.Duration `yaml:"delay" envconfig:"DELAY" default:"3s"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
	RetryWait time.Duration `yaml:"retry_wait" envconfig:"RETRY_WAIT" default:"30s"`
	UserAgent string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"`
}

// AnalysisConfig bounds the analysis cohort and sample-size gates.
type AnalysisConfig struct {
	CohortStart      int `yaml:"cohort_start" envconfig:"COHORT_START" default:"2010"`
	CohortEnd        int `yaml:"cohort_end" envconfig:"COHORT_END" default:"2021"`
	MinPlayers       int `yaml:"min_players" envconfig:"MIN_PLAYERS" default:"20"`
	HeatmapMinCell   int `yaml:"heatmap_min_cell" envconfig:"HEATMAP_MIN_CELL" default:"10"`
	RollingWindow    int `yaml:"rolling_window" envconfig:"ROLLING_WINDOW" default:"10"`
	ValueTableR1Min  int `yaml:"value_table_r1_min" envconfig:"VALUE_TABLE_R1_MIN" default:"5"`
	ValueTableR35Min int `yaml:"value_table_r35_min" envconfig:"VALUE_TABLE_R35_MIN" default:"10"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	WebDir  string `yaml:"web_dir" envconfig:"WEB_DIR" default:"web"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and the optional
// config file. Environment variables win.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DRAFTPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// getConfigFilePath returns the config file location, overridable via env
func getConfigFilePath() string {
	if path := os.Getenv("DRAFTPULSE_CONFIG"); path != "" {
		return path
	}
	return "draftpulse.yaml"
}

// mergeConfigs merges file config with env config (env takes precedence,
// zero values fall back to the file)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Server.OperationTimeout == 0 {
		envConfig.Server.OperationTimeout = fileConfig.Server.OperationTimeout
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Scraper.BaseURL == "" {
		envConfig.Scraper.BaseURL = fileConfig.Scraper.BaseURL
	}
	if envConfig.Scraper.FromYear == 0 {
		envConfig.Scraper.FromYear = fileConfig.Scraper.FromYear
	}
	if envConfig.Scraper.ToYear == 0 {
		envConfig.Scraper.ToYear = fileConfig.Scraper.ToYear
	}
	if envConfig.Scraper.Delay == 0 {
		envConfig.Scraper.Delay = fileConfig.Scraper.Delay
	}
	if envConfig.Analysis.CohortStart == 0 {
		envConfig.Analysis.CohortStart = fileConfig.Analysis.CohortStart
	}
	if envConfig.Analysis.CohortEnd == 0 {
		envConfig.Analysis.CohortEnd = fileConfig.Analysis.CohortEnd
	}
	if envConfig.Paths.BaseDir == "" {
		envConfig.Paths.BaseDir = fileConfig.Paths.BaseDir
	}

	return envConfig
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Scraper.FromYear > c.Scraper.ToYear {
		return fmt.Errorf("scraper from_year %d after to_year %d", c.Scraper.FromYear, c.Scraper.ToYear)
	}
	if c.Analysis.CohortStart > c.Analysis.CohortEnd {
		return fmt.Errorf("cohort start %d after end %d", c.Analysis.CohortStart, c.Analysis.CohortEnd)
	}
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}
	return nil
}
