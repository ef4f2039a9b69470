package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Leads    LeadsConfig
	Mail     MailConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	MaxIdleConns int
	MaxOpenConns int
	Seed         bool
}

type JWTConfig struct {
	Secret string
	// AdminUserTypes may act on any tenant's leads.
	AdminUserTypes []uint
}

type LeadsConfig struct {
	Timezone    string
	PhoneRegion string
	DigestSpec  string
}

type MailConfig struct {
	ResendAPIKey string
	From         string
}

func Load() *Config {
	godotenv.Load() // optional .env

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			DBName:       getEnv("DB_NAME", "meetowner"),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 100),
			Seed:         getEnv("SEED_REFERENCE_DATA", "true") == "true",
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", "change-me"),
			AdminUserTypes: parseUintList(getEnv("ADMIN_USER_TYPES", "1")),
		},
		Leads: LeadsConfig{
			Timezone:    getEnv("APP_TIMEZONE", "Asia/Kolkata"),
			PhoneRegion: getEnv("PHONE_REGION", "IN"),
			DigestSpec:  getEnv("FOLLOWUP_DIGEST_SPEC", "0 9 * * *"),
		},
		Mail: MailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			From:         getEnv("MAIL_FROM", "MeetOwner CRM <noreply@meetowner.in>"),
		},
	}
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.DBName)
}

// Location resolves the configured time zone, falling back to UTC.
func (l LeadsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseUintList(raw string) []uint {
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}
