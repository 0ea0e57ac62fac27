package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the connection settings for the external identity
// provider. All fields empty means the static demo directory is used instead.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

type Config struct {
	Environment string
	LogLevel    slog.Level

	// Durable client storage. Empty RedisURL selects the in-memory backend.
	RedisURL    string
	RedisPrefix string

	SessionTTL time.Duration

	// Audit sink. Without brokers the in-process channel publisher is used.
	AuditTopic   string
	KafkaBrokers []string

	// AuthProvider selects the credential verifier: "static" or "casdoor".
	AuthProvider string
	Casdoor      CasdoorConfig
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:     os.Getenv("REDIS_URL"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "coaching:"),
		AuditTopic:   getEnv("AUDIT_TOPIC", "coaching.audit"),
		AuthProvider: getEnv("AUTH_PROVIDER", "static"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: os.Getenv("CASDOOR_ORGANIZATION"),
			Application:  os.Getenv("CASDOOR_APPLICATION"),
		},
	}

	ttl := getEnv("SESSION_TTL", "2h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %q", ttl)
	}
	cfg.SessionTTL = d

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.AuthProvider != "static" && cfg.AuthProvider != "casdoor" {
		return nil, fmt.Errorf("invalid AUTH_PROVIDER %q: must be static or casdoor", cfg.AuthProvider)
	}
	if cfg.AuthProvider == "casdoor" && cfg.Casdoor.Endpoint == "" {
		return nil, fmt.Errorf("AUTH_PROVIDER is casdoor but CASDOOR_ENDPOINT is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
