package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDataPath is where the processed extract lives, relative to the
// executable.
const DefaultDataPath = "data/processed/lifecycle_aggregated.csv"

// Config captures process level settings.
type Config struct {
	DataPath  string `yaml:"data_path"`
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataPath:  defaultDataPath(),
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds a Config from defaults, an optional YAML file and the
// environment, in that order of precedence (environment wins). An empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LIFECYCLE_DATA"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("LIFECYCLE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("LIFECYCLE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LIFECYCLE_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

// WithDataPath returns c with DataPath replaced by path, unless path is
// empty. Commands apply their -data or -out flag through it so that flags
// take precedence over the file and the environment.
func (c Config) WithDataPath(path string) Config {
	if path != "" {
		c.DataPath = path
	}
	return c
}

// Validate checks for settings the process cannot start without.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("config: data_path is required")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	return nil
}

// defaultDataPath resolves DefaultDataPath next to the running binary,
// falling back to the working directory.
func defaultDataPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultDataPath
	}
	return filepath.Join(filepath.Dir(exe), DefaultDataPath)
}
