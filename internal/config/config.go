package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"

	"github.com/framepack/framepack/internal/distributor"
	"github.com/framepack/framepack/internal/inventory"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Source      string
	Destination string
	MaxFiles    int
	MaxBytes    int64
	Extensions  []string
	// Seed is nil when the run should pick its own seed.
	Seed *uint64
	// CopyRate throttles copies to this many files per second; 0 disables.
	CopyRate float64
	DryRun   bool
	Verbose  bool
}

// yamlConfig represents the YAML configuration file structure. Sizes are
// strings so values like "4GiB" or "500MB" work.
type yamlConfig struct {
	Source      string   `yaml:"source"`
	Destination string   `yaml:"destination"`
	MaxFiles    int      `yaml:"max_files"`
	MaxBytes    string   `yaml:"max_bytes"`
	Extensions  []string `yaml:"extensions"`
	Seed        *uint64  `yaml:"seed"`
	CopyRate    float64  `yaml:"copy_rate"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile  string
	Source      *string
	Destination *string
	MaxFiles    *int
	MaxBytes    *string
	Extensions  *string
	Seed        *string
	CopyRate    *float64
	DryRun      bool
	Verbose     bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values. Source and destination
// have no defaults and must come from another source.
func defaultConfig() Config {
	return Config{
		MaxFiles:   distributor.DefaultMaxFiles,
		MaxBytes:   distributor.DefaultMaxBytes,
		Extensions: inventory.DefaultExtensions(),
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Source != "" {
		cfg.Source = yamlCfg.Source
	}
	if yamlCfg.Destination != "" {
		cfg.Destination = yamlCfg.Destination
	}
	if yamlCfg.MaxFiles > 0 {
		cfg.MaxFiles = yamlCfg.MaxFiles
	}
	if yamlCfg.MaxBytes != "" {
		size, err := parseByteSize(yamlCfg.MaxBytes)
		if err != nil {
			return fmt.Errorf("max_bytes: %w", err)
		}
		cfg.MaxBytes = size
	}
	if len(yamlCfg.Extensions) > 0 {
		cfg.Extensions = yamlCfg.Extensions
	}
	if yamlCfg.Seed != nil {
		seed := *yamlCfg.Seed
		cfg.Seed = &seed
	}
	if yamlCfg.CopyRate > 0 {
		cfg.CopyRate = yamlCfg.CopyRate
	}
	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if src := strings.TrimSpace(os.Getenv("FRAMEPACK_SOURCE")); src != "" {
		cfg.Source = src
	}
	if dst := strings.TrimSpace(os.Getenv("FRAMEPACK_DESTINATION")); dst != "" {
		cfg.Destination = dst
	}
	if raw := strings.TrimSpace(os.Getenv("FRAMEPACK_MAX_FILES")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return fmt.Errorf("FRAMEPACK_MAX_FILES must be a positive integer, got %q", raw)
		}
		cfg.MaxFiles = value
	}
	if raw := strings.TrimSpace(os.Getenv("FRAMEPACK_MAX_BYTES")); raw != "" {
		size, err := parseByteSize(raw)
		if err != nil {
			return fmt.Errorf("FRAMEPACK_MAX_BYTES: %w", err)
		}
		cfg.MaxBytes = size
	}
	if raw := strings.TrimSpace(os.Getenv("FRAMEPACK_EXTENSIONS")); raw != "" {
		cfg.Extensions = splitList(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("FRAMEPACK_SEED")); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("FRAMEPACK_SEED must be an unsigned integer, got %q", raw)
		}
		cfg.Seed = &seed
	}
	if raw := strings.TrimSpace(os.Getenv("FRAMEPACK_COPY_RATE")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			return fmt.Errorf("FRAMEPACK_COPY_RATE must be a non-negative number, got %q", raw)
		}
		cfg.CopyRate = value
	}
	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Source != nil && *overrides.Source != "" {
		cfg.Source = *overrides.Source
	}
	if overrides.Destination != nil && *overrides.Destination != "" {
		cfg.Destination = *overrides.Destination
	}
	if overrides.MaxFiles != nil && *overrides.MaxFiles > 0 {
		cfg.MaxFiles = *overrides.MaxFiles
	}
	if overrides.MaxBytes != nil && *overrides.MaxBytes != "" {
		size, err := parseByteSize(*overrides.MaxBytes)
		if err != nil {
			return fmt.Errorf("--max-bytes: %w", err)
		}
		cfg.MaxBytes = size
	}
	if overrides.Extensions != nil && *overrides.Extensions != "" {
		cfg.Extensions = splitList(*overrides.Extensions)
	}
	if overrides.Seed != nil && *overrides.Seed != "" {
		seed, err := strconv.ParseUint(*overrides.Seed, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed must be an unsigned integer, got %q", *overrides.Seed)
		}
		cfg.Seed = &seed
	}
	if overrides.CopyRate != nil && *overrides.CopyRate >= 0 {
		cfg.CopyRate = *overrides.CopyRate
	}
	cfg.DryRun = cfg.DryRun || overrides.DryRun
	cfg.Verbose = cfg.Verbose || overrides.Verbose
	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Source == "" {
		return fmt.Errorf("source directory must be set")
	}
	if cfg.Destination == "" {
		return fmt.Errorf("destination directory must be set")
	}
	if cfg.MaxFiles < 1 {
		return fmt.Errorf("max files per folder must be at least 1, got %d", cfg.MaxFiles)
	}
	if cfg.MaxBytes < 1 {
		return fmt.Errorf("max bytes per folder must be at least 1, got %d", cfg.MaxBytes)
	}
	if len(cfg.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	return nil
}

// parseByteSize parses a human-readable size such as "4GiB", "500MB", or a
// plain byte count. Units are binary (1K = 1024).
func parseByteSize(raw string) (int64, error) {
	size, err := units.RAMInBytes(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", raw, err)
	}
	if size < 1 {
		return 0, fmt.Errorf("size must be at least 1 byte, got %q", raw)
	}
	return size, nil
}

// splitList parses a comma-separated list, dropping empty items.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
