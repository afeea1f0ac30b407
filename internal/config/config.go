// Package config reads the autobill environment configuration.
// Every variable is optional and falls back to the documented default,
// so a bare `autobill model.onnx` works out of the box.
package config

import (
	"os"
	"strconv"
	"time"
)

// Env holds the process configuration, fixed for the lifetime of the run.
type Env struct {
	APIURL        string        // billing endpoint (CheckoutUI)
	Threshold     float64       // confidence threshold for a qualifying frame
	StreakFrames  int           // consecutive qualifying frames before billing
	Cooldown      time.Duration // minimum wall-clock gap between confirmations
	Unit          string        // quantity unit sent with each cart line
	PricesFile    string        // label -> unit price JSON file
	FrameInterval time.Duration // frame pacing interval (~10 fps default)
	DashboardPort string        // local dashboard port, empty = disabled
	JournalPath   string        // sqlite journal path, empty = disabled
	LogLevel      string        // debug, info, warn, error
}

// Load reads the SMART_GROCERY_BOX_* environment variables.
func Load() Env {
	return Env{
		APIURL:        getEnv("SMART_GROCERY_BOX_API_URL", "http://localhost:3000/product"),
		Threshold:     getEnvFloat("SMART_GROCERY_BOX_THRESHOLD", 0.90),
		StreakFrames:  getEnvInt("SMART_GROCERY_BOX_STREAK_FRAMES", 8),
		Cooldown:      getEnvSeconds("SMART_GROCERY_BOX_COOLDOWN_SECONDS", 2.0),
		Unit:          getEnv("SMART_GROCERY_BOX_UNIT", "pcs"),
		PricesFile:    getEnv("SMART_GROCERY_BOX_PRICES_FILE", "prices.json"),
		FrameInterval: time.Duration(getEnvInt("SMART_GROCERY_BOX_FRAME_INTERVAL_MS", 100)) * time.Millisecond,
		DashboardPort: getEnv("SMART_GROCERY_BOX_DASHBOARD_PORT", ""),
		JournalPath:   getEnv("SMART_GROCERY_BOX_JOURNAL", ""),
		LogLevel:      getEnv("SMART_GROCERY_BOX_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvSeconds parses a float number of seconds into a Duration.
// SMART_GROCERY_BOX_COOLDOWN_SECONDS accepts fractional values.
func getEnvSeconds(key string, fallback float64) time.Duration {
	secs := getEnvFloat(key, fallback)
	return time.Duration(secs * float64(time.Second))
}
