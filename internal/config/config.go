package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server Server `yaml:"server"`

	FleetAPI FleetAPI `yaml:"fleet_api"`

	Redis Redis `yaml:"redis"`

	JWT JWT `yaml:"jwt"`

	Log Log `yaml:"log"`
}

type Server struct {
	Address string `yaml:"address"`
	// Rate limit in ulule/limiter notation, e.g. "60-M"
	RateLimit string `yaml:"rate_limit"`
}

type FleetAPI struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured client timeout, zero when unset so the
// client falls back to its default.
func (f FleetAPI) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	Secret string `yaml:"secret"`
}

type Log struct {
	Level string `yaml:"level"`
}

func Load() (*Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	configPath := "configs/development.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Server.Address = getEnv("SERVER_ADDRESS", cfg.Server.Address)
	cfg.Server.RateLimit = getEnv("SERVER_RATE_LIMIT", cfg.Server.RateLimit)
	cfg.FleetAPI.BaseURL = getEnv("FLEET_API_BASE_URL", cfg.FleetAPI.BaseURL)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	if v := os.Getenv("FLEET_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FleetAPI.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
