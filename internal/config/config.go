package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigVersion is the supported config schema version.
const ConfigVersion = 1

// Config represents the complete tracelink configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Snapshot SnapshotConfig `json:"snapshot" mapstructure:"snapshot"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls what the build pass scans.
type ScanConfig struct {
	// SourceRoots are repo-relative directories scanned for explicit markers
	// and used to resolve convention subjects.
	SourceRoots []string `json:"sourceRoots" mapstructure:"sourceRoots"`

	// ArtifactRoots are repo-relative directories scanned for test containers.
	ArtifactRoots []string `json:"artifactRoots" mapstructure:"artifactRoots"`

	// Exclude lists directory names skipped during traversal.
	Exclude []string `json:"exclude" mapstructure:"exclude"`

	// SourceExtensions are the file extensions considered source files.
	SourceExtensions []string `json:"sourceExtensions" mapstructure:"sourceExtensions"`

	// ConventionSuffixes are container-name suffixes that mark a test file.
	// Checked longest-first so "Tests" wins over "Test".
	ConventionSuffixes []string `json:"conventionSuffixes" mapstructure:"conventionSuffixes"`

	// LookaheadLines is the symbol extractor window after an explicit marker.
	LookaheadLines int `json:"lookaheadLines" mapstructure:"lookaheadLines"`
}

// SnapshotConfig controls snapshot persistence.
type SnapshotConfig struct {
	// Path is the repo-relative path of the serialized index snapshot.
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  ConfigVersion,
		RepoRoot: ".",
		Scan: ScanConfig{
			SourceRoots:        []string{"src"},
			ArtifactRoots:      []string{"tests", "Tests"},
			Exclude:            []string{"bin", "obj", "node_modules", "vendor", "generated", "dist", "out"},
			SourceExtensions:   []string{".cs"},
			ConventionSuffixes: []string{"Tests", "Test"},
			LookaheadLines:     4,
		},
		Snapshot: SnapshotConfig{
			Path: ".tracelink/trace-index.json",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .tracelink/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", ConfigVersion)
	v.SetDefault("repoRoot", ".")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".tracelink"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Fill zero-valued sections from defaults so a partial config file works.
	def := DefaultConfig()
	if len(cfg.Scan.SourceRoots) == 0 {
		cfg.Scan.SourceRoots = def.Scan.SourceRoots
	}
	if len(cfg.Scan.ArtifactRoots) == 0 {
		cfg.Scan.ArtifactRoots = def.Scan.ArtifactRoots
	}
	if len(cfg.Scan.Exclude) == 0 {
		cfg.Scan.Exclude = def.Scan.Exclude
	}
	if len(cfg.Scan.SourceExtensions) == 0 {
		cfg.Scan.SourceExtensions = def.Scan.SourceExtensions
	}
	if len(cfg.Scan.ConventionSuffixes) == 0 {
		cfg.Scan.ConventionSuffixes = def.Scan.ConventionSuffixes
	}
	if cfg.Scan.LookaheadLines <= 0 {
		cfg.Scan.LookaheadLines = def.Scan.LookaheadLines
	}
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = def.Snapshot.Path
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}

	return &cfg, nil
}

// Save writes the configuration to .tracelink/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".tracelink")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != ConfigVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scan.LookaheadLines < 1 {
		return &ConfigError{Field: "scan.lookaheadLines", Message: "must be at least 1"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
