package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	HomeDir     string // storage root; empty means ~/.branchwrite
	CORSOrigins string
	// Logging
	LogDir      string // server log file directory; empty means <root>/logs
	LogMaxFiles int
	// Debug flags
	Debug bool // Enables debug-level logging
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "4317"),
		Environment: env,
		HomeDir:     getEnv("BRANCHWRITE_HOME", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "tauri://localhost,http://localhost:1420"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
