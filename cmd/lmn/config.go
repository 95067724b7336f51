package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL    string
	Addr           string
	AllowedOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	// PhotoStore selects the photo backend: "fs" or "s3".
	PhotoStore string
	MediaDir   string

	S3Region        string
	S3Bucket        string
	S3Endpoint      string
	S3PathStyle     bool
	S3PublicBaseURL string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET env var is required")
	}

	ttl := time.Duration(0)
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		ttl = parsed
	}

	cfg := Config{
		DatabaseURL:    dsn,
		Addr:           fmt.Sprintf(":%s", envOrDefault("PORT", "8080")),
		AllowedOrigins: parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		JWTSecret:      secret,
		TokenTTL:       ttl,
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		PhotoStore:     envOrDefault("PHOTO_STORE", "fs"),
		MediaDir:       envOrDefault("MEDIA_DIR", "media"),

		S3Region:        os.Getenv("S3_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3PathStyle:     os.Getenv("S3_PATH_STYLE") == "true",
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	switch cfg.PhotoStore {
	case "fs":
	case "s3":
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET env var is required when PHOTO_STORE=s3")
		}
	default:
		return Config{}, fmt.Errorf("unknown PHOTO_STORE %q", cfg.PhotoStore)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
