package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DBConn        string

	TokenSecret string
	TokenTTL    time.Duration
	BcryptCost  int

	CORSOrigins []string

	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	HealthCheckSpec string
}

// NewConfig loads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("RATE_LIMIT_REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REDIS_DB: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "5005"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:           getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "cohort-tools-api"),
		DBConn:             getEnv("DB_CONN", "host=localhost port=5432 user=cohort password=cohort dbname=cohort_tools sslmode=disable"),
		TokenSecret:        getEnv("TOKEN_SECRET", "secret"),
		TokenTTL:           ttl,
		BcryptCost:         cost,
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		RateLimitRedisAddr: getEnv("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: getEnv("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   redisDB,
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SenderEmail:        getEnv("SENDER_EMAIL", ""),
		HealthCheckSpec:    getEnv("HEALTH_CHECK_SPEC", "@every 30s"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
		if c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required")
		}
	case DriverPostgres:
		if c.DBConn == "" {
			return fmt.Errorf("DB_CONN is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// EmailEnabled reports whether outbound mail is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimRight(strings.TrimSpace(part), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
