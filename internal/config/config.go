package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr     = ":8080"
	defaultFollowUpDelay  = "48h"
	defaultMailRate       = "2"
	defaultAdminSecret    = "change-me-admin-secret"
	defaultAdminTokenTTL  = "12h"
	defaultLogLevel       = "info"
	defaultShutdownPeriod = "10s"
)

// Config is the process configuration read from the environment
type Config struct {
	AppEnv     string
	ListenAddr string
	LogLevel   string

	DatabaseURL string

	ResendAPIKey  string
	MailFrom      string
	MailRate      float64
	FollowUpDelay time.Duration

	PayLinkDiagnostic string
	PayLinkAudit      string

	AdminJWTSecret string
	AdminTokenTTL  time.Duration

	PresetsFile    string
	CORSOrigins    []string
	ShutdownPeriod time.Duration
}

// Strict reports whether missing collaborator settings must stop the process
func (c *Config) Strict() bool {
	return isProdLike(c.AppEnv)
}

// PersistenceConfigured reports whether a lead store can be opened
func (c *Config) PersistenceConfigured() bool {
	return c.DatabaseURL != ""
}

// NotificationConfigured reports whether e-mail can be sent
func (c *Config) NotificationConfigured() bool {
	return c.ResendAPIKey != "" && c.MailFrom != ""
}

// LoadDotEnv loads .env files if present; existing variables win
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Load reads configuration from the environment and validates it.
// In prod-like environments any missing collaborator credential is a
// *ConfigurationError.
func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.ResendAPIKey = strings.TrimSpace(os.Getenv("RESEND_API_KEY"))
	cfg.MailFrom = strings.TrimSpace(os.Getenv("MAIL_FROM"))
	cfg.PayLinkDiagnostic = strings.TrimSpace(os.Getenv("PAY_LINK_DIAGNOSTIC"))
	cfg.PayLinkAudit = strings.TrimSpace(os.Getenv("PAY_LINK_AUDIT"))
	cfg.AdminJWTSecret = strings.TrimSpace(getEnv("ADMIN_JWT_SECRET", defaultAdminSecret))
	cfg.PresetsFile = strings.TrimSpace(os.Getenv("GFI_PRESETS_FILE"))
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.FollowUpDelay, err = parseDurationEnv("FOLLOW_UP_DELAY", defaultFollowUpDelay)
	if err != nil {
		return nil, err
	}
	cfg.AdminTokenTTL, err = parseDurationEnv("ADMIN_TOKEN_TTL", defaultAdminTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownPeriod, err = parseDurationEnv("SHUTDOWN_PERIOD", defaultShutdownPeriod)
	if err != nil {
		return nil, err
	}
	cfg.MailRate, err = parseFloatEnv("MAIL_RATE_PER_SEC", defaultMailRate)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.ListenAddr == "" {
		return &ConfigurationError{Key: "LISTEN_ADDR", Reason: "must not be empty"}
	}
	if cfg.FollowUpDelay <= 0 {
		return &ConfigurationError{Key: "FOLLOW_UP_DELAY", Reason: "must be > 0"}
	}
	if cfg.AdminTokenTTL <= 0 {
		return &ConfigurationError{Key: "ADMIN_TOKEN_TTL", Reason: "must be > 0"}
	}
	if cfg.MailRate <= 0 {
		return &ConfigurationError{Key: "MAIL_RATE_PER_SEC", Reason: "must be > 0"}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigurationError{Key: "LOG_LEVEL", Reason: "must be one of debug, info, warn, error"}
	}

	if !cfg.Strict() {
		return nil
	}

	required := []struct {
		key   string
		value string
	}{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"RESEND_API_KEY", cfg.ResendAPIKey},
		{"MAIL_FROM", cfg.MailFrom},
		{"PAY_LINK_DIAGNOSTIC", cfg.PayLinkDiagnostic},
		{"PAY_LINK_AUDIT", cfg.PayLinkAudit},
	}
	for _, r := range required {
		if r.value == "" {
			return &ConfigurationError{Key: r.key, Reason: fmt.Sprintf("must be set when APP_ENV=%s", cfg.AppEnv)}
		}
	}
	if isEmptyOrDefault(cfg.AdminJWTSecret, defaultAdminSecret) {
		return &ConfigurationError{Key: "ADMIN_JWT_SECRET", Reason: "must be set and not default in prod/release"}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, &ConfigurationError{Key: name, Reason: fmt.Sprintf("invalid duration %q", value), Err: err}
	}
	return d, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ConfigurationError{Key: name, Reason: fmt.Sprintf("invalid number %q", value), Err: err}
	}
	return f, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
