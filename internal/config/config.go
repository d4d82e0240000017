package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAccessTTL  = "15m"
	defaultRefreshTTL = "168h"
	defaultUploadDir  = "./uploads"
)

// Config is the explicit runtime configuration built once at startup.
// Missing signing secrets make Load fail so the process never accepts
// traffic it cannot authenticate.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	UploadDir string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev")))
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "taskboard.db")
	cfg.UploadDir = getEnv("UPLOAD_DIR", defaultUploadDir)

	cfg.AccessTokenSecret = strings.TrimSpace(os.Getenv("ACCESS_TOKEN_SECRET"))
	if cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	cfg.RefreshTokenSecret = strings.TrimSpace(os.Getenv("REFRESH_TOKEN_SECRET"))
	if cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}

	var err error
	cfg.AccessTokenTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTokenTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := strings.TrimSpace(getEnv(key, def))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 15m or 168h: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
