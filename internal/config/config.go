package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port" validate:"required,numeric"`
	Env  string `yaml:"env" validate:"oneof=development production test"`

	BackendURL     string        `yaml:"backend_url" validate:"required,url"`
	BackendTimeout time.Duration `yaml:"backend_timeout" validate:"gt=0"`
	LimitsTTL      time.Duration `yaml:"limits_ttl" validate:"gte=0"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogJSON  bool   `yaml:"log_json"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"gte=0"`

	// StatePath is the sqlite file the CLI keeps its settings in. Empty disables persistence.
	StatePath string `yaml:"state_path"`
}

func defaultConfig() Config {
	return Config{
		Port:           "3000",
		Env:            "development",
		BackendURL:     "http://localhost:8080",
		BackendTimeout: 10 * time.Second,
		LimitsTTL:      5 * time.Minute,
		LogLevel:       "info",
		RateLimitRPS:   50,
		RateLimitBurst: 100,
		StatePath:      defaultStatePath(),
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by PASSGEN_CONFIG and the environment, in that order of precedence.
func Load() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("PASSGEN_CONFIG"); path != "" {
		if err := loadConfigFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("failed to load config from yaml: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.BackendURL = getEnv("BACKEND_URL", cfg.BackendURL)
	cfg.BackendTimeout = getDuration("BACKEND_TIMEOUT", cfg.BackendTimeout)
	cfg.LimitsTTL = getDuration("LIMITS_TTL", cfg.LimitsTTL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogJSON = getBool("LOG_JSON", cfg.LogJSON)
	cfg.RateLimitRPS = getFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.StatePath = getEnv("PASSGEN_STATE", cfg.StatePath)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(cfg *Config, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return yaml.NewDecoder(f).Decode(cfg)
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "passgen", "settings.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring invalid boolean", "key", key, "value", v)
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring invalid number", "key", key, "value", v)
		return fallback
	}
	return f
}
