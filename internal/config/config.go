package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-super-secret-key-change-in-production"

// Config holds all application configuration
type Config struct {
	Port  string
	GoEnv string

	DBDriver    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	LogMode  string
	LogLevel string
	LogFile  string

	InvoiceStorage     string
	InvoiceDir         string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	InvoiceSequence string
	RedisURL        string

	Company  CompanyInfo
	Currency string
}

// CompanyInfo is the seller block printed on invoices.
type CompanyInfo struct {
	Name    string
	Address string
	City    string
	Email   string
}

// Load loads the configuration from environment variables.
// .env.<GO_ENV> is tried first, then .env; missing files are not an error.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current process environment without touching .env files.
func FromEnv() *Config {
	return &Config{
		Port:               getEnv("PORT", "3000"),
		GoEnv:              getEnv("GO_ENV", "development"),
		DBDriver:           getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:             getDuration("JWT_TTL", 24*time.Hour),
		AdminEmail:         getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "admin123"),
		LogMode:            getEnv("LOG_MODE", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", ""),
		InvoiceStorage:     getEnv("INVOICE_STORAGE", "local"),
		InvoiceDir:         getEnv("INVOICE_DIR", "./invoices"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		InvoiceSequence:    getEnv("INVOICE_SEQUENCE", "db"),
		RedisURL:           getEnv("REDIS_URL", ""),
		Company: CompanyInfo{
			Name:    getEnv("COMPANY_NAME", "Your Company"),
			Address: getEnv("COMPANY_ADDRESS", "123 Commerce Street"),
			City:    getEnv("COMPANY_CITY", "75000 Paris"),
			Email:   getEnv("COMPANY_EMAIL", "contact@yourcompany.com"),
		},
		Currency: getEnv("CURRENCY", "FCFA"),
	}
}

// Validate checks that the configuration is consistent
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.InvoiceStorage {
	case "local":
	case "s3":
		if c.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required when INVOICE_STORAGE=s3")
		}
	default:
		return fmt.Errorf("unsupported INVOICE_STORAGE %q", c.InvoiceStorage)
	}
	switch c.InvoiceSequence {
	case "db":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when INVOICE_SEQUENCE=redis")
		}
	default:
		return fmt.Errorf("unsupported INVOICE_SEQUENCE %q", c.InvoiceSequence)
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("12h") or a plain number of hours.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}
	log.Printf("Invalid %s=%q, using default %s", key, value, defaultValue)
	return defaultValue
}
