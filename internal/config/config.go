package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"github.com/subosito/gotenv"
)

// DefaultEnvFile is the dotenv file Load reads before processing the environment.
const DefaultEnvFile = ".env"

// Config holds all library configuration.
type Config struct {
	Paths   PathsConfig
	Stream  StreamConfig
	CSV     CSVConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// PathsConfig controls project-root resolution.
type PathsConfig struct {
	Root       string `envconfig:"FILES_ROOT"`
	RootMarker string `envconfig:"FILES_ROOT_MARKER" default:"go.mod"`
	InstallDir string `envconfig:"FILES_INSTALL_DIR" default:"vendor"`
}

// StreamConfig controls chunked reads and writes.
type StreamConfig struct {
	ChunkSize     int    `envconfig:"FILES_CHUNK_SIZE" default:"65536"`
	HighWaterMark int    `envconfig:"FILES_HIGH_WATER_MARK" default:"16384"`
	Encoding      string `envconfig:"FILES_ENCODING" default:"utf-8"`
}

// CSVConfig holds parser defaults.
type CSVConfig struct {
	Delimiter   string `envconfig:"FILES_CSV_DELIMITER" default:","`
	HeaderLines int    `envconfig:"FILES_CSV_HEADER_LINES" default:"1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds Prometheus configuration.
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"false"`
}

// Load reads DefaultEnvFile when present, then loads configuration from the environment.
func Load() (*Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom is Load with an explicit dotenv file. Variables already set in the
// process environment win over the file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			RootMarker: "go.mod",
			InstallDir: "vendor",
		},
		Stream: StreamConfig{
			ChunkSize:     64 * 1024,
			HighWaterMark: 16 * 1024,
			Encoding:      "utf-8",
		},
		CSV: CSVConfig{
			Delimiter:   ",",
			HeaderLines: 1,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate checks values envconfig cannot express in tags.
func (c *Config) Validate() error {
	if c.Stream.ChunkSize <= 0 {
		return fmt.Errorf("FILES_CHUNK_SIZE must be positive, got %d", c.Stream.ChunkSize)
	}
	if c.Stream.HighWaterMark <= 0 {
		return fmt.Errorf("FILES_HIGH_WATER_MARK must be positive, got %d", c.Stream.HighWaterMark)
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("FILES_CSV_DELIMITER must be a single character, got %q", c.CSV.Delimiter)
	}
	if c.CSV.HeaderLines < 0 {
		return fmt.Errorf("FILES_CSV_HEADER_LINES cannot be negative, got %d", c.CSV.HeaderLines)
	}
	if c.Paths.RootMarker == "" {
		return fmt.Errorf("FILES_ROOT_MARKER cannot be empty")
	}
	return nil
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c CSVConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// StartDir is where root discovery begins: the working directory.
func StartDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
