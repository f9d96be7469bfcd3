package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	AllowedOrigins []string
	DemoMode       bool
	LogLevel       string

	// Events are published only when AMQPURL is set.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	CacheMaxCost int64
}

func Load() (Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "budget"),
		AMQPQueue:      getEnv("AMQP_QUEUE", "budget.transactions"),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	demo, err := strconv.ParseBool(getEnv("DEMO_MODE", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("DEMO_MODE: %w", err))
	}
	cfg.DemoMode = demo

	maxCost, err := strconv.ParseInt(getEnv("CACHE_MAX_COST", "10000"), 10, 64)
	if err != nil || maxCost <= 0 {
		errs = append(errs, errors.New("CACHE_MAX_COST must be a positive integer"))
	}
	cfg.CacheMaxCost = maxCost

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// LoadDatabaseURL is used by commands that only need the database.
func LoadDatabaseURL() (string, error) {
	_ = godotenv.Load()
	url := getEnv("DATABASE_URL", "")
	if url == "" {
		return "", errors.New("DATABASE_URL is required")
	}
	return url, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
