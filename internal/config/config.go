package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Razorpay  RazorpayConfig
	Resend    ResendConfig
	R2        R2Config
	Storage   StorageConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
	Demo      DemoConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port          string
	Host          string
	Env           string
	ClientOrigins []string
}

type DatabaseConfig struct {
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret          string // signs the session cookie
	JWTSecret       string
	TokenExpiration time.Duration
	CookieSecure    bool
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
	BaseURL   string
}

type ResendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
	Endpoint        string
}

type StorageConfig struct {
	UploadDir string
	PublicURL string
}

type RedisConfig struct {
	URL string
}

type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type DemoConfig struct {
	UserEmails []string
}

type LogConfig struct {
	Level string
}

// IsProduction returns true when running with ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	port := getEnv("PORT", "8080")
	host := getEnv("HOST", "localhost")

	config := &Config{
		Server: ServerConfig{
			Port:          port,
			Host:          host,
			Env:           getEnv("ENV", "development"),
			ClientOrigins: getEnvAsSlice("CLIENT_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: parseDatabaseConfig(),
		Session: SessionConfig{
			Secret:          getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			JWTSecret:       getEnv("JWT_SECRET", "your-jwt-secret-change-in-production"),
			TokenExpiration: getEnvAsDuration("TOKEN_EXPIRATION", 24*time.Hour),
			CookieSecure:    getEnvAsBool("COOKIE_SECURE", false),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_ID_KEY", ""),
			KeySecret: getEnv("RAZORPAY_SECRET_KEY", ""),
			Currency:  getEnv("RAZORPAY_CURRENCY", "INR"),
			BaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		},
		Resend: ResendConfig{
			APIKey:    getEnv("RESEND_API_KEY", ""),
			FromEmail: getEnv("RESEND_FROM_EMAIL", "noreply@ecommercecraze.com"),
			FromName:  getEnv("RESEND_FROM_NAME", "E-Commerce Craze"),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", "ecommerce-images"),
			PublicURL:       getEnv("R2_PUBLIC_URL", ""),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
			PublicURL: getEnv("UPLOAD_PUBLIC_URL", "http://"+host+":"+port+"/uploads"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Kafka: KafkaConfig{
			Brokers:    getEnvAsSlice("KAFKA_BROKERS", nil),
			OrderTopic: getEnv("KAFKA_ORDER_TOPIC", "order-events"),
		},
		RateLimit: RateLimitConfig{
			MaxAttempts: getEnvAsInt("RATE_LIMIT_MAX", 10),
			Window:      getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Demo: DemoConfig{
			UserEmails: getEnvAsSlice("DEMO_USER_EMAILS", nil),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations that are unsafe to run
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	if c.Session.TokenExpiration <= 0 {
		return errors.New("TOKEN_EXPIRATION must be positive")
	}
	if c.RateLimit.MaxAttempts <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	if !c.IsProduction() {
		return nil
	}

	if strings.HasPrefix(c.Session.Secret, "your-") || strings.HasPrefix(c.Session.JWTSecret, "your-") {
		return errors.New("SESSION_SECRET and JWT_SECRET must be set in production")
	}
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return errors.New("RAZORPAY_ID_KEY and RAZORPAY_SECRET_KEY must be set in production")
	}
	return nil
}

func parseDatabaseConfig() DatabaseConfig {
	// Check if DATABASE_URL is provided
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL != "" {
		return parseDatabaseURL(databaseURL)
	}

	// Fall back to individual environment variables
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "ecommerce"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15m") or plain milliseconds ("900000")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
