package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	Mongo      MongoConfig
	APIKeys    []string
}

type MongoConfig struct {
	URL                    string
	DBName                 string
	MaxPoolSize            int
	ServerSelectionTimeout time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	mongoConfig := MongoConfig{
		URL:                    getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:                 getEnv("MONGO_DB_NAME", "test"),
		MaxPoolSize:            getEnvInt("MONGO_MAX_POOL_SIZE", 10),
		ServerSelectionTimeout: time.Duration(getEnvInt("MONGO_SERVER_SELECTION_TIMEOUT_MS", 8000)) * time.Millisecond,
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Mongo:      mongoConfig,
		APIKeys:    parseAPIKeys(getEnv("API_KEYS", "")),
	}
}

// parseAPIKeys splits the comma-separated allow-list, trimming whitespace
// and dropping empty entries.
func parseAPIKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		key := strings.TrimSpace(part)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
