package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	R2       R2Config
	Scraper  ScraperConfig
	LogLevel string
}

type ServerConfig struct {
	AppEnv          string
	Port            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver      string
	URL         string
	SQLitePath  string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CardTTL  time.Duration
}

type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// Enabled reports whether every value needed to reach the bucket is set.
func (c R2Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != "" && c.PublicURL != ""
}

type ScraperConfig struct {
	CardListURL string
	Interval    time.Duration
	Timeout     time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads the configuration from the environment. Outside production a
// local .env file is loaded first when present.
func Load() *Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "development"),
			Port:            getEnv("PORT", "8000"),
			AllowedOrigins:  getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", DriverPostgres),
			URL:         getEnv("DATABASE_URL", ""),
			SQLitePath:  getEnv("SQLITE_PATH", "sharedeck.db"),
			MaxConns:    getEnvInt("DB_MAX_CONNS", 10),
			MinConns:    getEnvInt("DB_MIN_CONNS", 2),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			Secret:   getEnv("NEXTAUTH_SECRET", getEnv("JWT_SECRET", "")),
			TokenTTL: getEnvDuration("TOKEN_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CardTTL:  getEnvDuration("CARD_CACHE_TTL", 10*time.Minute),
		},
		R2: R2Config{
			Endpoint:  getEnv("R2_ENDPOINT_URL", ""),
			AccessKey: getEnv("R2_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			Bucket:    getEnv("R2_BUCKET_NAME", ""),
			PublicURL: strings.TrimRight(getEnv("R2_PUBLIC_URL", ""), "/"),
		},
		Scraper: ScraperConfig{
			CardListURL: getEnv("CARD_LIST_URL", "https://www.onepiece-cardgame.com/cardlist/"),
			Interval:    getEnvDuration("SCRAPE_INTERVAL", 24*time.Hour),
			Timeout:     getEnvDuration("SCRAPE_TIMEOUT", 30*time.Second),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("NEXTAUTH_SECRET (or JWT_SECRET) is required"))
	}
	return errors.Join(append(errs, c.Database.Validate())...)
}

func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
