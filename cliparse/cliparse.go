package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Secrets (env preferred)
	JWTSecret string

	// Election window, half-open: [Start, End)
	ElectionStart time.Time
	ElectionEnd   time.Time

	// SMTP settings for OTP delivery
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Set the Secure flag on the session cookie (HTTPS deployments)
	SecureCookies bool
}

// ParseFlags validates flags and fills the remaining settings from the
// environment. A .env file in the working directory is honored first.
func ParseFlags(args []string) (Config, error) {
	// Best-effort; system env vars win when no .env file exists
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("ballotd", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Session signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3324 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	// Election window - MUST be configured, and MUST be coherent. Misconfigured
	// window strings are a startup failure, not a per-request surprise.
	var err error
	cfg.ElectionStart, err = parseTimeEnv("ELECTION_START")
	if err != nil {
		return Config{}, err
	}
	cfg.ElectionEnd, err = parseTimeEnv("ELECTION_END")
	if err != nil {
		return Config{}, err
	}
	if !cfg.ElectionStart.Before(cfg.ElectionEnd) {
		return Config{}, errors.New("ELECTION_START must be before ELECTION_END")
	}

	// SMTP for OTP delivery
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		return Config{}, errors.New("SMTP_HOST required")
	}
	cfg.SMTPPort = 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errors.New("invalid SMTP_PORT env variable")
		}
		cfg.SMTPPort = port
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.MailFrom = os.Getenv("MAIL_FROM")
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}
	if cfg.MailFrom == "" {
		return Config{}, errors.New("MAIL_FROM (or SMTP_USER) required")
	}

	cfg.SecureCookies = os.Getenv("SECURE_COOKIES") == "true"

	return cfg, nil
}

func parseTimeEnv(key string) (time.Time, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Time{}, fmt.Errorf("%s required (RFC3339, e.g. 2026-03-14T08:00:00Z)", key)
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}
