package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/wren/pkg/logger"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "wren.yaml"

// EnvPrefix prefixes environment overrides, e.g. WREN_EMIT_MARKERS=false.
const EnvPrefix = "WREN"

// Config represents wren.yaml configuration
type Config struct {
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
	Emit  EmitConfig  `yaml:"emit" mapstructure:"emit"`
	Load  LoadConfig  `yaml:"load" mapstructure:"load"`
	Graph GraphConfig `yaml:"graph" mapstructure:"graph"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// EmitConfig controls emitted declaration text
type EmitConfig struct {
	Markers    bool   `yaml:"markers" mapstructure:"markers"`
	Terminator string `yaml:"terminator" mapstructure:"terminator"`
}

// LoadConfig controls header discovery and parsing
type LoadConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
	IgnoreDirs []string `yaml:"ignore_dirs" mapstructure:"ignore_dirs"`
	Workers    int      `yaml:"workers" mapstructure:"workers"`       // 0 = one per CPU
	CacheSize  int      `yaml:"cache_size" mapstructure:"cache_size"` // parsed files kept in memory
}

// GraphConfig holds diagram export settings
type GraphConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Emit: EmitConfig{
			Markers:    true,
			Terminator: ";",
		},
		Load: LoadConfig{
			Extensions: []string{".h", ".hh", ".hpp", ".hxx"},
			IgnoreDirs: []string{".git", "build", "dist", "vendor", "node_modules"},
			Workers:    0,
			CacheSize:  256,
		},
		Graph: GraphConfig{Format: "mermaid"},
	}
}

// DotEnvPath is the optional environment file read at startup.
const DotEnvPath = ".env"

// LoadDotEnv copies the variables in path into the process environment
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from path, layered as defaults < file <
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if filepath.Ext(path) == "" {
				v.SetConfigType("yaml")
			}
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("emit.markers", d.Emit.Markers)
	v.SetDefault("emit.terminator", d.Emit.Terminator)
	v.SetDefault("load.extensions", d.Load.Extensions)
	v.SetDefault("load.ignore_dirs", d.Load.IgnoreDirs)
	v.SetDefault("load.workers", d.Load.Workers)
	v.SetDefault("load.cache_size", d.Load.CacheSize)
	v.SetDefault("graph.format", d.Graph.Format)
}

// Validate checks values that would otherwise fail later, deep inside a command.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	if strings.TrimSpace(c.Emit.Terminator) == "" {
		return fmt.Errorf("emit.terminator must not be empty")
	}
	if len(c.Load.Extensions) == 0 {
		return fmt.Errorf("load.extensions must list at least one extension")
	}
	if c.Load.Workers < 0 {
		return fmt.Errorf("load.workers must be >= 0, got %d", c.Load.Workers)
	}
	if c.Load.CacheSize < 0 {
		return fmt.Errorf("load.cache_size must be >= 0, got %d", c.Load.CacheSize)
	}
	return nil
}

// Save writes configuration to a YAML file
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
