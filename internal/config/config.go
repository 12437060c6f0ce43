package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// SMTP holds mail server settings for decision notifications.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LoadSMTP reads SMTP settings from the environment.
func LoadSMTP() SMTP {
	return SMTP{
		Host:     GetEnv("SMTP_HOST", "localhost"),
		Port:     GetIntEnv("SMTP_PORT", 587),
		Username: GetEnv("SMTP_USERNAME", ""),
		Password: GetEnv("SMTP_PASSWORD", ""),
		From:     GetEnv("SMTP_FROM", "loans@dashenbank.example"),
	}
}
