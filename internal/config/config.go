// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// SMTP
	SMTPHost                string
	SMTPPort                int
	SMTPUser                string
	SMTPPass                string
	EmailFrom               string
	EmailFromName           string
	EmailReplyTo            string
	EmailRejectUnauthorized bool

	// Public link base for reset/unsubscribe URLs
	BaseURL string

	// DB
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	// Redis (suppression cache, optional)
	RedisAddr string
	RedisPass string

	// Auth
	ServiceExpectedToken string

	// R2 brand asset storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string

	// CORS
	AllowedOrigins string

	// Compliance sync (unsubscribe event feed)
	ComplianceServiceURL string
}

func Load() *Config {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8086"
	}

	smtpPort := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("❌ Invalid SMTP_PORT: %v", err)
		}
		smtpPort = p
	}

	return &Config{
		ServerPort: port,

		SMTPHost:                os.Getenv("SMTP_HOST"),
		SMTPPort:                smtpPort,
		SMTPUser:                os.Getenv("SMTP_USER"),
		SMTPPass:                os.Getenv("SMTP_PASS"),
		EmailFrom:               os.Getenv("EMAIL_FROM"),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "Drivana"),
		EmailReplyTo:            getEnv("EMAIL_REPLY_TO", "support@drivana.com"),
		EmailRejectUnauthorized: getEnv("EMAIL_REJECT_UNAUTHORIZED", "true") != "false",

		BaseURL: strings.TrimSuffix(getEnv("BASE_URL", "https://drivana.com"), "/"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    getEnv("DB_PASS", "postgres"),
		DBName:    getEnv("DB_NAME", "rental_notify"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),

		ServiceExpectedToken: getEnv("SERVICE_TOKEN", "dev-service-token"),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		ComplianceServiceURL: os.Getenv("COMPLIANCE_SERVICE_URL"),
	}
}

// ValidateSMTP reports every missing SMTP variable in one diagnostic so an
// operator can fix them all at once.
func (c *Config) ValidateSMTP() error {
	var missing []string
	if c.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.SMTPUser == "" {
		missing = append(missing, "SMTP_USER")
	}
	if c.SMTPPass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if c.EmailFrom == "" {
		missing = append(missing, "EMAIL_FROM")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing SMTP configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
