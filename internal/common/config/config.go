package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	LogLevel     string
	ReadTimeout  int
	WriteTimeout int

	// planner
	PolicyPath string
	AssetsDir  string

	// archive
	ArchiveDBPath      string
	ArchiveStorageRoot string

	// gateway upstreams
	PlannerURL string
	ArchiveURL string
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения.
// Переменные окружения важнее значений из файла.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[CONFIG] skipping %s: %v", f, err)
		}
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 30),

		PolicyPath: getEnv("POLICY_PATH", ""),
		AssetsDir:  getEnv("ASSETS_DIR", "assets"),

		ArchiveDBPath:      getEnv("ARCHIVE_DB_PATH", "data/archive.db"),
		ArchiveStorageRoot: getEnv("ARCHIVE_STORAGE_ROOT", "data/drawings"),

		PlannerURL: getEnv("PLANNER_URL", "http://localhost:3001"),
		ArchiveURL: getEnv("ARCHIVE_URL", "http://localhost:3002"),
	}
}

// IsProduction сообщает, нужен ли боевой формат логов.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
