package config

import (
	"os"
	"strings"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// Hosted backend
	BackendURL     string
	BackendAnonKey string
	FunctionsURL   string

	// Session credential storage. The hosted provider persists auth
	// sessions under keys shaped like "<prefix><project-ref><suffix>";
	// we locate them by scanning for that pattern.
	SessionKeyPrefix string
	SessionKeySuffix string

	// Billing
	TaxRate string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		RedisAddr: getEnv("REDIS_ADDR", "redis-crmdash:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		BackendURL:     getEnv("BACKEND_URL", "http://localhost:54321"),
		BackendAnonKey: getEnv("BACKEND_ANON_KEY", ""),
		FunctionsURL:   getEnv("BILLING_FUNCTIONS_URL", ""),

		SessionKeyPrefix: getEnv("SESSION_KEY_PREFIX", "sb-"),
		SessionKeySuffix: getEnv("SESSION_KEY_SUFFIX", "-auth-token"),

		TaxRate: getEnv("TAX_RATE", "0.10"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
