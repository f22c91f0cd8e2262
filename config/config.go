package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HTTP    ServerConfig
	Log     LogConfig
	Reader  ReaderConfig
	Stripe  StripeConfig
	Session SessionConfig
	Redis   RedisConfig
	Objects ObjectStoreConfig
}

type AppConfig struct {
	ServiceName string
}

type ServerConfig struct {
	Host string
	Port string
}

type LogConfig struct {
	Level string
}

type ReaderConfig struct {
	Title     string
	PageCount int
}

type StripeConfig struct {
	SecretKey   string
	PriceID     string
	APIBaseURL  string
	HTTPTimeout time.Duration
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type RedisConfig struct {
	URL string
}

type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	pageCount := getIntEnv("READER_PAGE_COUNT", 0)
	if pageCount <= 0 {
		return nil, errors.New("READER_PAGE_COUNT environment variable is required and must be positive")
	}

	stripeSecretKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeSecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY environment variable is required")
	}
	stripePriceID := os.Getenv("STRIPE_PRICE_ID")
	if stripePriceID == "" {
		return nil, errors.New("STRIPE_PRICE_ID environment variable is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, errors.New("REDIS_URL environment variable is required")
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, errors.New("S3_BUCKET environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "reader-service"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Reader: ReaderConfig{
			Title:     getEnv("READER_TITLE", "Protected Reader"),
			PageCount: pageCount,
		},
		Stripe: StripeConfig{
			SecretKey:   stripeSecretKey,
			PriceID:     stripePriceID,
			APIBaseURL:  getEnv("STRIPE_API_BASE_URL", "https://api.stripe.com"),
			HTTPTimeout: getSecondsEnv("STRIPE_HTTP_TIMEOUT_SECONDS", 10*time.Second),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "ebook_session"),
			TTL:        getSecondsEnv("SESSION_TTL_SECONDS", 365*24*time.Hour),
		},
		Redis: RedisConfig{
			URL: redisURL,
		},
		Objects: ObjectStoreConfig{
			Endpoint:  getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Bucket:    bucket,
			UseSSL:    getBoolEnv("S3_USE_SSL", true),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
