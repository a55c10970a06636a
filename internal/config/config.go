package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	LeadRoute          string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration

	// MailProvider selects the transport: smtp, sendgrid, ses or stub.
	MailProvider string
	FromEmail    string
	FromName     string
	OwnerEmail   string

	// SMTP relay
	SMTPHost        string
	SMTPPort        int
	SMTPSecure      bool
	SMTPUser        string
	SMTPPass        string
	SMTPDialTimeout time.Duration

	// SendGrid Email Configuration
	SendGridAPIKey string

	// AWS (SES transport)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Owner notification rendering
	OwnerEmailHTML    bool
	OwnerEmailRawDump bool
	LeadTimezone      string

	MetricsEnabled bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LeadRoute:          getEnv("LEAD_ROUTE", "/api/send-lead"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		MailProvider: strings.ToLower(strings.TrimSpace(getEnv("MAIL_PROVIDER", "smtp"))),
		FromEmail:    getEnv("FROM_EMAIL", ""),
		FromName:     getEnv("FROM_NAME", ""),
		OwnerEmail:   getEnv("OWNER_EMAIL", ""),

		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvAsInt("SMTP_PORT", 465),
		SMTPSecure:      getEnvAsBool("SMTP_SECURE", true),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPass:        getEnv("SMTP_PASS", ""),
		SMTPDialTimeout: getEnvAsDuration("SMTP_DIAL_TIMEOUT", 10*time.Second),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		OwnerEmailHTML:    getEnvAsBool("OWNER_EMAIL_HTML", true),
		OwnerEmailRawDump: getEnvAsBool("OWNER_EMAIL_RAW_DUMP", false),
		LeadTimezone:      getEnv("LEAD_TIMEZONE", "Local"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
