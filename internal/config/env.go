package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"phrasegraph/internal/logging"
)

// LoadEnv reads a .env file from the working directory when present
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using system environment variables")
	}
}

func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("ignoring non-numeric environment value", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logging.Warn("ignoring non-numeric environment value", "key", key, "value", value)
		return defaultValue
	}
	return f
}
