package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Env        string
	ServerPort string

	DatabaseURL      string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBMaxConns       int32
	DBAcquireTimeout time.Duration
	DBIdleTimeout    time.Duration

	RedisURL string

	JWTSecret    string
	JWTExpiresIn time.Duration
	JWTIssuer    string
	JWTAudience  string

	PasswordHasher string
	BcryptRounds   int

	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
	AuthRateLimitWindow  time.Duration
	AuthRateLimitMax     int

	CORSOrigin      string
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:        strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		ServerPort: getEnv("PORT", "3000"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "blog"),
		DBPassword:  getEnv("DB_PASSWORD", "blog_dev_password"),
		DBName:      getEnv("DB_NAME", "blog"),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "blog-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "blog-users"),

		PasswordHasher: strings.ToLower(getEnv("PASSWORD_HASHER", "bcrypt")),

		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	collect(err)
	cfg.DBMaxConns = int32(maxConns)

	cfg.DBAcquireTimeout, err = getEnvDuration("DB_ACQUIRE_TIMEOUT", 2*time.Second)
	collect(err)
	cfg.DBIdleTimeout, err = getEnvDuration("DB_IDLE_TIMEOUT", 30*time.Second)
	collect(err)
	cfg.JWTExpiresIn, err = getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour)
	collect(err)
	cfg.BcryptRounds, err = getEnvInt("BCRYPT_ROUNDS", 12)
	collect(err)
	cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute)
	collect(err)
	cfg.RateLimitMaxRequests, err = getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100)
	collect(err)
	cfg.AuthRateLimitWindow, err = getEnvDuration("AUTH_RATE_LIMIT_WINDOW", 15*time.Minute)
	collect(err)
	cfg.AuthRateLimitMax, err = getEnvInt("AUTH_RATE_LIMIT_MAX", 5)
	collect(err)
	cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	collect(err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the constraints the server refuses to start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be one of development, production, test (got %q)", c.Env))
	}

	if port, err := strconv.Atoi(c.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535 (got %q)", c.ServerPort))
	}

	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}

	if c.BcryptRounds < 10 || c.BcryptRounds > 15 {
		errs = append(errs, fmt.Errorf("BCRYPT_ROUNDS must be between 10 and 15 (got %d)", c.BcryptRounds))
	}

	if c.PasswordHasher != "bcrypt" && c.PasswordHasher != "argon2id" {
		errs = append(errs, fmt.Errorf("PASSWORD_HASHER must be bcrypt or argon2id (got %q)", c.PasswordHasher))
	}

	if c.DBMaxConns < 1 {
		errs = append(errs, errors.New("DB_MAX_CONNS must be positive"))
	}

	if c.RateLimitMaxRequests < 1 || c.AuthRateLimitMax < 1 {
		errs = append(errs, errors.New("rate limit maximums must be positive"))
	}

	if c.RateLimitWindow <= 0 || c.AuthRateLimitWindow <= 0 || c.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("rate limit windows and JWT_EXPIRES_IN must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) ListenAddr() string {
	return ":" + c.ServerPort
}

// DSN returns DATABASE_URL when set, otherwise a URL assembled from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 15m or 168h: %w", key, err)
	}

	return d, nil
}
