package config

import (
	"fmt"
	"os"
	"time"
)

// Config is loaded once at process start and handed to the components
// that need it. Nothing reads the environment after Load returns.
type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	SessionSecret string
	EmailSecret   string
	SessionTTL    time.Duration
	VerifyTTL     time.Duration

	// Infrastructure
	DBAddr string

	// Outbound email
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Link construction
	BaseURL     string // public base URL of this service, for verification links
	FrontendURL string // redirect target after verification

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":3000"),
	}

	// The two signing secrets are independent on purpose: a session token
	// must never pass verification-token checks and vice versa.
	cfg.SessionSecret = os.Getenv("JWT_SECRET_KEY")
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET_KEY")
	}
	cfg.EmailSecret = os.Getenv("EMAIL_SECRET_KEY")
	if cfg.EmailSecret == "" {
		return nil, fmt.Errorf("missing required env var: EMAIL_SECRET_KEY")
	}
	if cfg.SessionSecret == cfg.EmailSecret {
		return nil, fmt.Errorf("JWT_SECRET_KEY and EMAIL_SECRET_KEY must differ")
	}

	ttl, err := getDuration("SESSION_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	vtl, err := getDuration("VERIFY_EMAIL_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.VerifyTTL = vtl

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	cfg.SMTPHost = getEnv("SMTP_HOST", "localhost")
	port, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPUser)

	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:3000")
	cfg.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:5173")

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
