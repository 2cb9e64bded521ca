// Package config loads engine configuration from a .env file and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI needs to assemble the engine.
type Config struct {
	// DBType selects the storage backend: "sqlite" (default) or "postgres".
	DBType string
	// DBPath is the SQLite file path.
	DBPath string
	// DatabaseURL is the PostgreSQL DSN, used when DBType is "postgres".
	DatabaseURL string
	// SessionSize is the default number of words per practice round.
	SessionSize int
	// Capacity bounds the mastery store.
	Capacity int
}

// Load reads .env when present, then the environment, applying defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBType:      getEnv("DB_TYPE", "sqlite"),
		DBPath:      getEnv("DB_PATH", filepath.Join("data", "vocabkit.db")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SessionSize: getEnvInt("SESSION_SIZE", 10),
		Capacity:    getEnvInt("MASTERY_CAPACITY", 100),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
