package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Auth       AuthConfig
	Services   ServicesConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
	WorkerPool WorkerPoolConfig
	Server     ServerConfig
	Outreach   OutreachConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	ResendAPIKey       string
	DefaultEmailSender string
	GoogleAIAPIKey     string
	OpenAIAPIKey       string
	ChatProvider       string
	WebAppURI          string
}

// KafkaConfig holds Kafka/event streaming configuration.
// An empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// Enabled reports whether any brokers are configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// WorkerPoolConfig holds worker pool configuration for event processing
type WorkerPoolConfig struct {
	ReplyWorkers int
	EmailWorkers int

	// TokenSweepInterval is how often the worker purges expired revocations
	TokenSweepInterval time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	RateLimitRPM int
}

// OutreachConfig holds settings for the intake and proposal pipeline
type OutreachConfig struct {
	AgencyName       string
	PageFetchTimeout time.Duration
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	// Services configuration. Every provider is optional; features degrade when unset.
	cfg.Services.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Services.DefaultEmailSender = getEnvWithDefault("DEFAULT_EMAIL_SENDER_ADDRESS", "team@minimind.agency")
	cfg.Services.GoogleAIAPIKey = os.Getenv("GOOGLE_AI_API_KEY")
	cfg.Services.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Services.ChatProvider = getEnvWithDefault("CHAT_PROVIDER", "openai")
	cfg.Services.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")

	// Kafka configuration
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "outreach-events")
	cfg.Kafka.ConsumerGroup = getEnvWithDefault("KAFKA_CONSUMER_GROUP", "outreach-workers")

	// Redis configuration
	cfg.Redis.Enabled, err = strconv.ParseBool(getEnvWithDefault("REDIS_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_ENABLED: %w", err)
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Port, err = strconv.Atoi(getEnvWithDefault("REDIS_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_PORT: %w", err)
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}

	// Worker pool configuration
	cfg.WorkerPool.ReplyWorkers, err = strconv.Atoi(getEnvWithDefault("REPLY_WORKERS", "5"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REPLY_WORKERS: %w", err)
	}
	cfg.WorkerPool.EmailWorkers, err = strconv.Atoi(getEnvWithDefault("EMAIL_WORKERS", "3"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse EMAIL_WORKERS: %w", err)
	}
	cfg.WorkerPool.TokenSweepInterval, err = time.ParseDuration(getEnvWithDefault("TOKEN_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOKEN_SWEEP_INTERVAL: %w", err)
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.RateLimitRPM, err = strconv.Atoi(getEnvWithDefault("RATE_LIMIT_RPM", "30"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RATE_LIMIT_RPM: %w", err)
	}

	// Outreach configuration
	cfg.Outreach.AgencyName = getEnvWithDefault("AGENCY_NAME", "Minimind Agency")
	cfg.Outreach.PageFetchTimeout, err = time.ParseDuration(getEnvWithDefault("PAGE_FETCH_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PAGE_FETCH_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
