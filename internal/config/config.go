package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Load reads a .env file when present. Missing files are not an error:
// the process environment is used as-is.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Info("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": raw}).Warn("invalid integer setting, using default")
		return fallback
	}
	return v
}

func GetFloat(key string, fallback float64) float64 {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": raw}).Warn("invalid number setting, using default")
		return fallback
	}
	return v
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": raw}).Warn("invalid duration setting, using default")
		return fallback
	}
	return v
}
