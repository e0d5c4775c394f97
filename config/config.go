package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application-level configuration
type Config struct {
	// Language model
	OpenAIKey   string
	OpenAIModel string
	LLMTimeout  time.Duration

	// Browser / scraper
	FlightsURL     string
	NavTimeout     time.Duration
	SettleDelay    time.Duration
	MaxListings    int // top-N result rows to keep per search
	MaxRetries     int
	RateLimitDelay int // milliseconds between navigations
	Headless       bool

	// Output
	DatabaseURL string // empty disables search-history recording
	CSVFilePath string // empty disables the raw listing dump
}

// Load reads configuration from environment variables or falls back to defaults
func Load() *Config {
	return &Config{
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		FlightsURL:     getEnv("FLIGHTS_URL", "https://www.google.com/travel/flights"),
		NavTimeout:     time.Duration(getEnvInt("NAV_TIMEOUT_SECONDS", 60)) * time.Second,
		SettleDelay:    time.Duration(getEnvInt("SETTLE_DELAY_SECONDS", 5)) * time.Second,
		MaxListings:    getEnvInt("MAX_LISTINGS", 5),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		RateLimitDelay: getEnvInt("RATE_LIMIT_DELAY_MS", 2000),
		Headless:       getEnv("HEADLESS", "true") != "false",
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CSVFilePath:    getEnv("CSV_FILE_PATH", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
