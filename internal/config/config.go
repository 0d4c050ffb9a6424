package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	insecureSecretPlaceholder = "change_me_in_production"
	minSecretKeyLength        = 32
)

// Config is the full runtime configuration surface of the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Quotes   QuotesConfig
	Digest   DigestConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	SecretKey    string
	CookieSecure bool
	Location     *time.Location
}

// DatabaseConfig selects the driver. Postgres fields mirror the DB_* variables
// used by the hosted deployment, including Cloud SQL unix socket hosts.
type DatabaseConfig struct {
	Driver   string
	Path     string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

type QuotesConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DigestConfig struct {
	CronSchedule string
}

// Load reads environment variables, optionally seeded from envFile, and
// validates the result. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := fromEnvironment()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads only the database settings. CLI maintenance commands use
// it so they do not need the server secret.
func LoadDatabase(envFile string) (DatabaseConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return DatabaseConfig{}, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	database := databaseFromEnvironment()
	if err := database.Validate(); err != nil {
		return DatabaseConfig{}, err
	}
	return database, nil
}

// LocationFromEnvironment resolves TZ, defaulting to UTC.
func LocationFromEnvironment() (*time.Location, error) {
	location, err := time.LoadLocation(getenvWithDefault("TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ: %w", err)
	}
	return location, nil
}

func fromEnvironment() (*Config, error) {
	location, err := LocationFromEnvironment()
	if err != nil {
		return nil, err
	}

	cookieSecure, err := parseBoolEnv("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	quotesTimeout, err := time.ParseDuration(getenvWithDefault("QUOTES_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTES_TIMEOUT: %w", err)
	}

	digestSchedule, ok := os.LookupEnv("DIGEST_CRON")
	if !ok {
		digestSchedule = "0 7 * * 4"
	}

	return &Config{
		Server: ServerConfig{
			Port:         getenvWithDefault("PORT", "8080"),
			SecretKey:    strings.TrimSpace(os.Getenv("SECRET_KEY")),
			CookieSecure: cookieSecure,
			Location:     location,
		},
		Database: databaseFromEnvironment(),
		Quotes: QuotesConfig{
			BaseURL: getenvWithDefault("QUOTES_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout: quotesTimeout,
		},
		Digest: DigestConfig{
			CronSchedule: strings.TrimSpace(digestSchedule),
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}, nil
}

func databaseFromEnvironment() DatabaseConfig {
	return DatabaseConfig{
		Driver:   strings.ToLower(getenvWithDefault("DB_DRIVER", DriverSQLite)),
		Path:     getenvWithDefault("DB_PATH", filepath.Join("data", "samaan.db")),
		User:     getenvWithDefault("DB_USER", "postgres"),
		Password: getenvWithDefault("DB_PASSWORD", "password"),
		Name:     getenvWithDefault("DB_NAME", "samaan_db"),
		Host:     getenvWithDefault("DB_HOST", "localhost"),
		Port:     getenvWithDefault("DB_PORT", "5432"),
	}
}

// Validate ensures required values are present and sane.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}
	if err := ValidateSecretKey(c.Server.SecretKey); err != nil {
		return err
	}
	if c.Quotes.BaseURL == "" {
		return errors.New("QUOTES_BASE_URL must not be empty")
	}
	if c.Quotes.Timeout <= 0 {
		return errors.New("QUOTES_TIMEOUT must be positive")
	}
	return c.Database.Validate()
}

func (d DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return errors.New("DB_PATH must be provided for sqlite")
		}
	case DriverPostgres:
		if d.Name == "" || d.Host == "" {
			return errors.New("DB_NAME and DB_HOST must be provided for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", d.Driver)
	}
	return nil
}

// PostgresDSN builds a key/value DSN. Hosts starting with /cloudsql/ are unix
// socket directories and carry no port.
func (d DatabaseConfig) PostgresDSN() string {
	if strings.HasPrefix(d.Host, "/cloudsql/") {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable", d.Host, d.User, d.Password, d.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", d.Host, d.User, d.Password, d.Name, d.Port)
}

func ValidateSecretKey(secret string) error {
	switch {
	case secret == "":
		return errors.New("SECRET_KEY must be provided")
	case secret == insecureSecretPlaceholder:
		return errors.New("SECRET_KEY must not use the placeholder value")
	case len(secret) < minSecretKeyLength:
		return fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
