package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Client    ClientConfig
	JWT       JWTConfig
	Guest     GuestConfig
	Features  map[string]bool `mapstructure:"features"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type ClientConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	TokenPath      string `mapstructure:"token_path"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type GuestConfig struct {
	AccessHours int `mapstructure:"access_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// GuestAccessDuration converts the configured guest window into a
// duration; 48h when unset.
func (c *Config) GuestAccessDuration() time.Duration {
	hours := c.Guest.AccessHours
	if hours <= 0 {
		hours = 48
	}
	return time.Duration(hours) * time.Hour
}

// FeatureEnabled reports a feature flag; flags default to off.
func (c *Config) FeatureEnabled(name string) bool {
	return c.Features[name]
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LEARNHUB")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Client
	viper.BindEnv("client.base_url", "API_BASE_URL")
	viper.BindEnv("client.token_path", "TOKEN_PATH")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Guest access
	viper.BindEnv("guest.access_hours", "GUEST_ACCESS_HOURS")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("client.base_url", "http://localhost:8080")
	viper.SetDefault("client.timeout_seconds", 15)
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("guest.access_hours", 48)
	viper.SetDefault("rate_limit.max_requests", 1000)
	viper.SetDefault("rate_limit.window_minutes", 1)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No file is fine; env and defaults carry the day.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = os.Getenv("LEARNHUB_JWT_SECRET")
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-only-secret"
	}

	return &cfg, nil
}
