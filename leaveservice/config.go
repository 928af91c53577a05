package leaveservice

import (
	"os"
	"time"
)

// Config holds client settings for reaching the remote leave service.
type Config struct {
	// BaseURL is the service root, e.g. "http://127.0.0.1:5000".
	BaseURL string

	// Timeout bounds each request end to end.
	Timeout time.Duration
}

// FromEnv loads configuration from the environment:
//
//	API_BASE_URL          service root (default http://127.0.0.1:5000)
//	LEAVE_API_TIMEOUT     per-request timeout (default 10s)
func FromEnv() Config {
	return Config{
		BaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:5000"),
		Timeout: getEnvDuration("LEAVE_API_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
