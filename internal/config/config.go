package config

import (
	"fmt"
	"os"
	"time"
)

const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Config holds application configuration loaded from environment variables.
// Database settings live in DBConfig (see db.go).
type Config struct {
	Port            string
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool
}

// Load reads application configuration from the environment. The two JWT
// secrets are required and must differ so that one leaked secret cannot
// forge the other token type.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("SERVER_PORT", "8080"),
		AccessSecret:    os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret:   os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:  getduration("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		RefreshTokenTTL: getduration("REFRESH_TOKEN_TTL", DefaultRefreshTokenTTL),
		MinioEndpoint:   getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     getenv("MINIO_BUCKET", "kawanlib-documents"),
		MinioUseSSL:     getenv("MINIO_USE_SSL", "false") == "true",
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
