package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port            string
	MongoDBURI      string
	MongoDBPassword string
	Environment     string
	LogLevel        string

	// AdminEmail is the single account with override privileges: it may book
	// restricted rooms and edit or cancel anyone's booking.
	AdminEmail string
	// RestrictedRoomIDs lists rooms only the administrator may book into.
	RestrictedRoomIDs []string

	// Timezone applied to calendar events. Bookings themselves carry local
	// wall-clock times only.
	TimeZone   string
	CORSOrigin string

	// SMTP settings for notification mail. When the host is empty the mailer
	// logs instead of sending.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFromName string

	// Google Calendar sync. Disabled when the credentials file is unset.
	GoogleCredentialsFile string
	GoogleCalendarID      string

	// IdentityJWKSURL enables server-side verification of the requester's
	// email from a bearer token. Unset means the client-supplied email is
	// trusted as-is.
	IdentityJWKSURL string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		RestrictedRoomIDs: splitList(os.Getenv("RESTRICTED_ROOM_IDS")),

		TimeZone:   getEnvWithDefault("TIMEZONE", "America/Sao_Paulo"),
		CORSOrigin: getEnvWithDefault("CORS_ORIGIN", "http://localhost:5173"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvWithDefault("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFromName: getEnvWithDefault("SMTP_FROM_NAME", "Room Booking System"),

		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		GoogleCalendarID:      os.Getenv("GOOGLE_CALENDAR_ID"),

		IdentityJWKSURL: os.Getenv("IDENTITY_JWKS_URL"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
