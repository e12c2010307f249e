package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Reddit      RedditConfig
	Sentiment   SentimentConfig
	Ingest      IngestConfig
	Keywords    KeywordsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// RedditConfig holds upstream comment source configuration
type RedditConfig struct {
	Subreddit      string
	Flair          string
	PostLimit      int
	RequestTimeout time.Duration
}

// SentimentConfig holds sentiment labeling configuration
type SentimentConfig struct {
	Enabled      bool
	BaseURL      string
	APIKey       string
	Model        string
	RequestDelay time.Duration
}

// IngestConfig holds ingest pipeline configuration
type IngestConfig struct {
	Schedule    string
	EventsTopic string
	RunOnStart  bool
}

// KeywordsConfig holds keyword configuration loading options
type KeywordsConfig struct {
	// Path overrides the embedded default keyword tables when set.
	Path string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "ipolls"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Reddit: RedditConfig{
			Subreddit:      getEnv("REDDIT_SUBREDDIT", "portugal"),
			Flair:          getEnv("REDDIT_FLAIR", "Legislativas 2025"),
			PostLimit:      getEnvAsInt("REDDIT_POST_LIMIT", 100),
			RequestTimeout: getEnvAsDuration("REDDIT_REQUEST_TIMEOUT", 10*time.Second),
		},
		Sentiment: SentimentConfig{
			Enabled:      getEnvAsBool("SENTIMENT_ENABLED", false),
			BaseURL:      getEnv("SENTIMENT_BASE_URL", "https://api.openai.com/v1"),
			APIKey:       getEnv("SENTIMENT_API_KEY", ""),
			Model:        getEnv("SENTIMENT_MODEL", "gpt-3.5-turbo"),
			RequestDelay: getEnvAsDuration("SENTIMENT_REQUEST_DELAY", 1*time.Second),
		},
		Ingest: IngestConfig{
			Schedule:    getEnv("INGEST_SCHEDULE", "@every 6h"),
			EventsTopic: getEnv("INGEST_EVENTS_TOPIC", "comments"),
			RunOnStart:  getEnvAsBool("INGEST_RUN_ON_START", false),
		},
		Keywords: KeywordsConfig{
			Path: getEnv("KEYWORDS_PATH", ""),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Sentiment.Enabled && config.Sentiment.APIKey == "" {
		return fmt.Errorf("sentiment API key must be set when sentiment labeling is enabled")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
