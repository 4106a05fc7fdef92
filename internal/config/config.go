package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	Port               string
	Environment        string
	JWTSecret          string
	JWTExpiresIn       int
	AllowedEmailDomain string
	MigrationsDir      string
	SeedDemoUsers      bool
	SendGridAPIKey     string
	SendGridFromEmail  string
	SendGridFromName   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Port:               os.Getenv("PORT"),
		Environment:        os.Getenv("ENV"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowedEmailDomain: os.Getenv("ALLOWED_EMAIL_DOMAIN"),
		MigrationsDir:      os.Getenv("MIGRATIONS_DIR"),
		SeedDemoUsers:      os.Getenv("SEED_DEMO_USERS") == "true",
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail:  os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:   os.Getenv("SENDGRID_FROM_NAME"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.AllowedEmailDomain == "" {
		cfg.AllowedEmailDomain = "@pesu.pes.edu"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.SendGridFromName == "" {
		cfg.SendGridFromName = "TutorTribe"
	}

	cfg.JWTExpiresIn = 1800
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("JWT_EXPIRES_IN must be a number of seconds: %w", err)
		}
		cfg.JWTExpiresIn = n
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev_secret"
	}

	return cfg, nil
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresIn) * time.Second
}
