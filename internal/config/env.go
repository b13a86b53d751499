package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an environment variable as an integer with a fallback
func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

// getPositiveIntEnv is getIntEnv for settings where zero or less is unusable
func getPositiveIntEnv(key string, fallback int) int {
	if value := getIntEnv(key, fallback); value > 0 {
		return value
	}
	return fallback
}

func getBoolEnv(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true")
}

func getSecondsEnv(key string, fallback int) time.Duration {
	return time.Duration(getPositiveIntEnv(key, fallback)) * time.Second
}
