// Package config loads the application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
}

type ServerConfig struct {
	Addr            string  `yaml:"addr"`
	ReadTimeoutSec  int     `yaml:"read_timeout_sec"`
	WriteTimeoutSec int     `yaml:"write_timeout_sec"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds the connection settings for the optional postgres
// backend.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type SeedConfig struct {
	OnStartup bool `yaml:"on_startup"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			RateLimitRPS:    50,
			RateLimitBurst:  100,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "insidertrack.sqlite",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    "5432",
				SSLMode: "disable",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the configuration file at path, applies environment overrides
// and validates the result. An empty path yields the defaults plus
// overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file for deployment
// specific settings.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INSIDERTRACK_ADDR"); v != "" {
		cfg.Server.Addr = strings.TrimSpace(v)
	}
	if v := os.Getenv("INSIDERTRACK_DB_DRIVER"); v != "" {
		cfg.Database.Driver = strings.TrimSpace(v)
	}
	if v := os.Getenv("INSIDERTRACK_DB_PATH"); v != "" {
		cfg.Database.Path = strings.TrimSpace(v)
	}
	if v := os.Getenv("INSIDERTRACK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.TrimSpace(v)
	}
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.Database.Postgres.Host = strings.TrimSpace(v)
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		cfg.Database.Postgres.Port = strings.TrimSpace(v)
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.Database.Postgres.User = strings.TrimSpace(v)
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Database.Postgres.Password = strings.TrimSpace(v)
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.Database.Postgres.DBName = strings.TrimSpace(v)
	}
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("server.rate_limit_rps must be greater than 0")
	}
	if c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("server.rate_limit_burst must be greater than 0")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		p := c.Database.Postgres
		if p.Host == "" || p.User == "" || p.DBName == "" {
			return fmt.Errorf("database.postgres.host, user and dbname are required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.Driver == "postgres" {
		p := c.Database.Postgres
		sslmode := p.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			p.Host, p.Port, p.User, p.Password, p.DBName, sslmode)
	}
	return c.Database.Path
}
