package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port                 string
	LogLevel             string
	MaxRequestBodyBytes  int64
	AllowedOrigins       []string
	CacheExpiration      time.Duration
	CacheCleanupInterval time.Duration
	RateLimitInterval    time.Duration
	RateLimitBurst       int
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxRequestBodyBytesStr := getEnv("MAX_REQUEST_BODY_BYTES", "5242880")
	maxRequestBodyBytes, err := strconv.ParseInt(maxRequestBodyBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_REQUEST_BODY_BYTES format '%s'. Using default 5MB. Error: %v", maxRequestBodyBytesStr, err)
		maxRequestBodyBytes = 5 * 1024 * 1024
	}

	allowedOriginsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	var allowedOrigins []string
	for _, origin := range strings.Split(allowedOriginsStr, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	Cfg = &AppConfig{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		MaxRequestBodyBytes:  maxRequestBodyBytes,
		AllowedOrigins:       allowedOrigins,
		CacheExpiration:      getEnvAsDuration("CACHE_EXPIRATION", 15*time.Minute),
		CacheCleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 30*time.Minute),
		RateLimitInterval:    getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:       getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, MaxBody=%dB, Origins=%v",
		Cfg.Port, Cfg.LogLevel, Cfg.MaxRequestBodyBytes, Cfg.AllowedOrigins)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
