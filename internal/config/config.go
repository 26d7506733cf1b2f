package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/unclebandit/hudey-console/internal/db"
)

type Config struct {
	HTTPPort int

	APIURL      string
	APIToken    string
	HTTPTimeout time.Duration

	AuthRefreshURL   string
	AuthRefreshToken string
	AuthAPIKey       string

	RedisURL    string
	DatabaseURL string
	AMQPURL     string

	PollInterval time.Duration
	Location     *time.Location
}

// configFile mirrors config.yaml.
type configFile struct {
	Server struct {
		HTTPPort            int    `yaml:"http_port"`
		PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
		TimeZone            string `yaml:"timezone"`
	} `yaml:"server"`
	API struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`
	Auth struct {
		RefreshURL string `yaml:"refresh_url"`
	} `yaml:"auth"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
		AMQPURL     string `yaml:"amqp_url"`
	} `yaml:"dependencies"`
}

// Load reads .env (if present), then path (if present), then the
// environment. Later sources win.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := Config{
		HTTPPort:     8080,
		HTTPTimeout:  30 * time.Second,
		PollInterval: 5 * time.Second,
		Location:     time.Local,
	}
	timeZone := ""

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			var f configFile
			if err := yaml.Unmarshal(raw, &f); err != nil {
				return Config{}, fmt.Errorf("parse config file: %w", err)
			}
			if f.Server.HTTPPort > 0 {
				cfg.HTTPPort = f.Server.HTTPPort
			}
			if f.Server.PollIntervalSeconds > 0 {
				cfg.PollInterval = time.Duration(f.Server.PollIntervalSeconds) * time.Second
			}
			if f.API.TimeoutSeconds > 0 {
				cfg.HTTPTimeout = time.Duration(f.API.TimeoutSeconds) * time.Second
			}
			timeZone = f.Server.TimeZone
			cfg.APIURL = f.API.URL
			cfg.AuthRefreshURL = f.Auth.RefreshURL
			cfg.DatabaseURL = f.Dependencies.PostgresURL
			cfg.RedisURL = f.Dependencies.RedisURL
			cfg.AMQPURL = f.Dependencies.AMQPURL
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.APIURL = envOrDefault("HUDEY_API_URL", cfg.APIURL)
	cfg.APIToken = envOrDefault("HUDEY_API_TOKEN", cfg.APIToken)
	cfg.AuthRefreshURL = envOrDefault("AUTH_REFRESH_URL", cfg.AuthRefreshURL)
	cfg.AuthRefreshToken = envOrDefault("AUTH_REFRESH_TOKEN", cfg.AuthRefreshToken)
	cfg.AuthAPIKey = envOrDefault("AUTH_API_KEY", cfg.AuthAPIKey)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.AMQPURL = envOrDefault("AMQP_URL", cfg.AMQPURL)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	if cfg.DatabaseURL == "" && os.Getenv("DB_HOST") != "" {
		cfg.DatabaseURL = db.Params{
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     os.Getenv("DB_HOST"),
			Port:     envOrDefault("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		}.DSN()
	}

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.PollInterval = time.Duration(envInt("POLL_INTERVAL_SECONDS", int(cfg.PollInterval.Seconds()))) * time.Second
	cfg.HTTPTimeout = time.Duration(envInt("HTTP_TIMEOUT_SECONDS", int(cfg.HTTPTimeout.Seconds()))) * time.Second

	timeZone = envOrDefault("DASHBOARD_TZ", timeZone)
	if timeZone != "" {
		loc, err := time.LoadLocation(timeZone)
		if err != nil {
			return Config{}, fmt.Errorf("load timezone %q: %w", timeZone, err)
		}
		cfg.Location = loc
	}

	if cfg.AuthRefreshURL != "" && cfg.AuthRefreshToken == "" {
		return Config{}, fmt.Errorf("AUTH_REFRESH_URL set without AUTH_REFRESH_TOKEN")
	}
	return cfg, nil
}

// RequireAPI is checked by processes that call the Hudey backend.
func (c Config) RequireAPI() error {
	if c.APIURL == "" {
		return fmt.Errorf("missing HUDEY_API_URL")
	}
	return nil
}

// RequireSnapshots is checked by the snapshot worker.
func (c Config) RequireSnapshots() error {
	if c.AMQPURL == "" {
		return fmt.Errorf("missing AMQP_URL")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("missing DATABASE_URL or DB_HOST")
	}
	return nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt falls back on empty or invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
