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

// Config is the full application configuration.
// Built once by Load and passed explicitly to every constructor.
type Config struct {
	Environment string
	LogLevel    string

	Riot     RiotConfiguration
	Limits   LimitsConfiguration
	Sync     SyncConfiguration
	Database DatabaseConfiguration
	Redis    RedisConfiguration
	Bucket   BucketConfiguration
	Server   ServerConfiguration
}

// Riot API configuration.
type RiotConfiguration struct {
	ApiKey            string
	Region            string
	BaseURL           string
	MaxAttempts       int
	DefaultRetryAfter time.Duration
	RequestTimeout    time.Duration
}

// Single rate limit window.
type Limit struct {
	Count         int
	ResetInterval time.Duration
}

// Rate limit windows applied to every request.
type LimitsConfiguration struct {
	Lower  Limit
	Higher Limit
}

// Sync engine configuration.
type SyncConfiguration struct {
	DefaultMatches int
	Workers        int
	LockDuration   time.Duration
	ResyncInterval time.Duration
	Timeout        time.Duration
}

// Database configuration struct.
type DatabaseConfiguration struct {
	DSN string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// S3 compatible bucket used for the log archive.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// HTTP server configuration.
type ServerConfiguration struct {
	Port           string
	HealthPort     string
	AllowedOrigins []string
}

// Enabled reports if the log bucket can be used.
func (b BucketConfiguration) Enabled() bool {
	return b.LogBucket != "" && b.Endpoint != ""
}

// Addr returns the redis address.
func (r RedisConfiguration) Addr() string {
	return r.Host + ":" + r.Port
}

// Load reads the .env file when not running on docker and builds the configuration.
func Load() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "development")
	if environment != "docker" {
		// The file is optional, the variables may come from the shell.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Environment: environment,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Riot: RiotConfiguration{
			ApiKey:            os.Getenv("RIOT_API_KEY"),
			Region:            getEnv("RIOT_REGION", "americas"),
			BaseURL:           os.Getenv("RIOT_BASE_URL"),
			MaxAttempts:       getEnvInt("RIOT_MAX_ATTEMPTS", 3),
			DefaultRetryAfter: getEnvDuration("RIOT_DEFAULT_RETRY_AFTER", time.Second),
			RequestTimeout:    getEnvDuration("RIOT_REQUEST_TIMEOUT", 10*time.Second),
		},
		Limits: LimitsConfiguration{
			Lower: Limit{
				Count:         getEnvInt("RIOT_LIMIT_LOWER_COUNT", 20),
				ResetInterval: getEnvDuration("RIOT_LIMIT_LOWER_INTERVAL", time.Second),
			},
			Higher: Limit{
				Count:         getEnvInt("RIOT_LIMIT_HIGHER_COUNT", 100),
				ResetInterval: getEnvDuration("RIOT_LIMIT_HIGHER_INTERVAL", 2*time.Minute),
			},
		},
		Sync: SyncConfiguration{
			DefaultMatches: getEnvInt("SYNC_DEFAULT_MATCHES", 10),
			Workers:        getEnvInt("SYNC_WORKERS", 4),
			LockDuration:   getEnvDuration("SYNC_LOCK_DURATION", 2*time.Minute),
			ResyncInterval: getEnvDuration("SYNC_RESYNC_INTERVAL", time.Hour),
			Timeout:        getEnvDuration("SYNC_TIMEOUT", 90*time.Second),
		},
		Database: DatabaseConfiguration{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		Redis: RedisConfiguration{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Bucket: BucketConfiguration{
			Region:       getEnv("BUCKET_REGION", "us-east-1"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			LogBucket:    os.Getenv("BUCKET_LOG_NAME"),
		},
		Server: ServerConfiguration{
			Port:           getEnv("SERVER_PORT", "8080"),
			HealthPort:     getEnv("HEALTH_PORT", "50051"),
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the values that have no usable fallback.
func (c *Config) validate() error {
	if c.Riot.ApiKey == "" {
		return errors.New("RIOT_API_KEY is required")
	}

	if c.Riot.MaxAttempts < 1 {
		return fmt.Errorf("RIOT_MAX_ATTEMPTS must be at least 1, got %d", c.Riot.MaxAttempts)
	}

	if c.Sync.Workers < 1 {
		return fmt.Errorf("SYNC_WORKERS must be at least 1, got %d", c.Sync.Workers)
	}

	return nil
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

	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	var list []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
