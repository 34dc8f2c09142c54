package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/retailops/locator/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file, default .env in the working directory
		var err error
		if configPath != "" {
			err = godotenv.Load(configPath)
		} else {
			err = godotenv.Load()
		}
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "locator")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 8080)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "localhost:4150")
	configs.NSQ.LookupAddress = GetEnv("NSQ_LOOKUP_ADDRESS", "")
	configs.NSQ.Topic = GetEnv("NSQ_FILE_TOPIC", "catalog-file-events")
	configs.NSQ.Channel = GetEnv("NSQ_CHANNEL", "ingestor")

	// Object storage config
	configs.Storage.Endpoint = GetEnv("STORAGE_ENDPOINT", "")
	configs.Storage.AccessKey = GetEnv("STORAGE_ACCESS_KEY", "")
	configs.Storage.SecretKey = GetEnv("STORAGE_SECRET_KEY", "")
	configs.Storage.UseSSL = GetEnvAsBool("STORAGE_USE_SSL", false)
	configs.Storage.Bucket = GetEnv("STORAGE_BUCKET", "locator-bucket")
	configs.Storage.StoreFile = GetEnv("STORAGE_STORE_FILE", "storeList.csv")
	configs.Storage.ZipFile = GetEnv("STORAGE_ZIP_FILE", "zipList.csv")

	// Maps config
	configs.Maps.MatrixURL = GetEnv("MAPS_MATRIX_URL", "https://maps.googleapis.com/maps/api/distancematrix/json")
	configs.Maps.DirectionsURL = GetEnv("MAPS_DIRECTIONS_URL", "https://www.google.com/maps/dir/?api=1")
	configs.Maps.APIKey = GetEnv("MAPS_API_KEY", "")
	configs.Maps.Timeout = GetEnvAsInt("MAPS_TIMEOUT", 10)
	configs.Maps.MaxRetries = GetEnvAsInt("MAPS_MAX_RETRIES", 0)
	configs.Maps.RetryDelayMs = GetEnvAsInt("MAPS_RETRY_DELAY_MS", 100)

	// Locator config
	configs.Locator.CandidateCount = GetEnvAsInt("CANDIDATE_COUNT", 3)
	configs.Locator.ReloadInterval = GetEnvAsInt("CATALOG_RELOAD_INTERVAL", 0)
	configs.Locator.MemoTTL = GetEnvAsInt("REFINE_MEMO_TTL", 0)
	configs.Locator.MemoPrecision = uint(GetEnvAsInt("REFINE_MEMO_PRECISION", 7))

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
