package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultDevBaseURL  = "http://localhost:8000"
	DefaultProdBaseURL = "https://api.yourdomain.com"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	App     AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type APIConfig struct {
	BaseURL          string
	DevBaseURL       string
	ProdBaseURL      string
	Timeout          time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	ChatPollInterval time.Duration
}

type SessionConfig struct {
	Driver     string // sqlite, redis, postgres, memory
	Profile    string
	SQLitePath string
	TTL        time.Duration
	DSN        string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		API: APIConfig{
			BaseURL:          getEnv("API_BASE_URL", ""),
			DevBaseURL:       getEnv("DEV_BASE_URL", DefaultDevBaseURL),
			ProdBaseURL:      getEnv("PROD_BASE_URL", DefaultProdBaseURL),
			Timeout:          getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
			RateLimitRPS:     getEnvAsFloat("RATE_LIMIT_RPS", 0),
			RateLimitBurst:   getEnvAsInt("RATE_LIMIT_BURST", 10),
			ChatPollInterval: getEnvAsDuration("CHAT_POLL_INTERVAL", 5*time.Second),
		},
		Session: SessionConfig{
			Driver:     strings.ToLower(getEnv("SESSION_DRIVER", "sqlite")),
			Profile:    getEnv("SESSION_PROFILE", "default"),
			SQLitePath: getEnv("SESSION_SQLITE_PATH", "storefront.db"),
			TTL:        getEnvAsDuration("SESSION_TTL", 0),
			DSN:        getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BaseURL picks the backend address for the current environment.
// API_BASE_URL wins over the per-environment defaults.
func (c *Config) BaseURL() string {
	if c.API.BaseURL != "" {
		return strings.TrimSuffix(c.API.BaseURL, "/")
	}
	if c.App.Environment == "development" {
		return strings.TrimSuffix(c.API.DevBaseURL, "/")
	}
	return strings.TrimSuffix(c.API.ProdBaseURL, "/")
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.BaseURL() == "" {
		return fmt.Errorf("API_BASE_URL or DEV_BASE_URL/PROD_BASE_URL is required")
	}

	switch c.Session.Driver {
	case "sqlite":
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("SESSION_SQLITE_PATH is required for the sqlite session driver")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis session driver")
		}
	case "postgres":
		if c.Session.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres session driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown SESSION_DRIVER %q", c.Session.Driver)
	}

	if c.Session.Profile == "" {
		return fmt.Errorf("SESSION_PROFILE is required")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
