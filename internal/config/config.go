package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"

	StateMemory = "memory"
	StateRedis  = "redis"
)

type Config struct {
	AppEnv     string
	APIPort    string
	WebPort    string
	APIBaseURL string
	CORSOrigin string

	StorageDriver string
	DataFile      string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string

	StateDriver string
	RedisAddr   string
	JWTSecret   string

	RequestTimeout time.Duration
	RateLimit      float64
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		APIPort:    getEnv("API_PORT", "3000"),
		WebPort:    getEnv("WEB_PORT", "8080"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		StorageDriver: getEnv("STORAGE_DRIVER", StorageFile),
		DataFile:      getEnv("DATA_FILE", "db.json"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),

		StateDriver: getEnv("STATE_DRIVER", StateMemory),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		RequestTimeout: getDuration("REQUEST_TIMEOUT", 5*time.Second),
		RateLimit:      getFloat("RATE_LIMIT", 10),
	}

	if cfg.JWTSecret == "" && cfg.AppEnv != "production" {
		cfg.JWTSecret = "resto-dev-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file storage driver")
		}
	case StoragePostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER: %s", c.StorageDriver)
	}

	switch c.StateDriver {
	case StateMemory, StateRedis:
	default:
		return fmt.Errorf("unknown STATE_DRIVER: %s", c.StateDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return defaultValue
	}
	return f
}
