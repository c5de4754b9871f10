package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all runtime configuration, read once at startup.
type AppConfig struct {
	// Weather provider access.
	WeatherAPIKey string
	WeatherAPIURL string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// Inbound fixed-window rate limiting.
	RateLimitWindow time.Duration
	RateLimitMax    int

	Port string
	Env  string
}

// IsProduction reports whether the service runs in production mode, which
// redacts internal error messages.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY environment variable is required")
	}
	cfg.WeatherAPIURL = getenvDefault("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	window, err := getenvDuration("RATE_LIMIT_WINDOW", "15m")
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.RateLimitWindow = window
	cfg.RateLimitMax = getenvInt("RATE_LIMIT_MAX", 100)

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Env = getenvDefault("APP_ENV", "development")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
