// Package config loads service settings from defaults, an optional YAML file,
// a .env file and the process environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port             string `yaml:"port"`
	DataDir          string `yaml:"data_dir"`
	SheetName        string `yaml:"sheet_name"`
	WatchDefinitions bool   `yaml:"watch_definitions"`
	DatabaseURL      string `yaml:"database_url"`
	LogLevel         string `yaml:"log_level"`
	GinMode          string `yaml:"gin_mode"`
}

func Default() Config {
	return Config{
		Port:      "8000",
		DataDir:   "data",
		SheetName: "data",
		LogLevel:  "info",
		GinMode:   "release",
	}
}

// Load builds the configuration. path may be empty; envFile is ignored when it
// does not exist.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.DataDir, "SURVEY_DATA_DIR")
	setString(&c.SheetName, "SURVEY_SHEET")
	setString(&c.DatabaseURL, "POSTGRES_URL")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.GinMode, "GIN_MODE")

	if v := strings.TrimSpace(os.Getenv("SURVEY_WATCH")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SURVEY_WATCH: %w", err)
		}
		c.WatchDefinitions = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
