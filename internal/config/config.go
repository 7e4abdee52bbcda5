package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	SessionTTL    time.Duration
	SecureCookies bool
	CatalogAPIURL string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/shopwave?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		SecureCookies: getEnv("APP_ENV", "development") == "production",
		CatalogAPIURL: getEnv("CATALOG_API_URL", "https://dummyjson.com"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
