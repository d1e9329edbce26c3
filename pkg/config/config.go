package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the analyzer service.
type Config struct {
	Port string

	// Localization
	Language string // "en" or "pt"

	// Economic calendar (Finnhub)
	FinnhubAPIKey   string
	CalendarBaseURL string
	CalendarTimeout time.Duration
	CalendarCacheTTL time.Duration

	// Rule profiles
	RulesPath string // optional YAML overriding the built-in thresholds

	// Upload limits
	MaxFileSizeMB int

	// Database
	DBPath string

	// Auth
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Rate limiting (per IP)
	RateLimitPerSecond float64
	RateLimitBurst     int

	// CSV example served by the API; empty means the built-in template.
	CSVExampleTemplate string
}

// Load reads environment variables (optionally via .env) into Config.
func Load() (*Config, error) {
	// Ignore error so the app still starts when .env is missing.
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Language:           strings.ToLower(getEnv("LANGUAGE", "en")),
		FinnhubAPIKey:      os.Getenv("FINNHUB_API_KEY"),
		CalendarBaseURL:    getEnv("CALENDAR_BASE_URL", "https://finnhub.io/api/v1"),
		CalendarTimeout:    getEnvDuration("CALENDAR_TIMEOUT", 10*time.Second),
		CalendarCacheTTL:   getEnvDuration("CALENDAR_CACHE_TTL", 6*time.Hour),
		RulesPath:          getEnv("RULES_PATH", ""),
		MaxFileSizeMB:      getEnvInt("MAX_FILE_SIZE_MB", 10),
		DBPath:             getEnv("DB_PATH", "./data/analyzer.db"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		AllowedOrigins:     splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 50),
		CSVExampleTemplate: os.Getenv("CSV_EXAMPLE_TEMPLATE"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
