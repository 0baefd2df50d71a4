package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvFile is loaded before reading the environment when present.
const EnvFile = "config/local.env"

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Server configuration
	Server ServerConfig

	// Auth configuration
	Auth AuthConfig

	// Maps provider configuration
	Maps MapsConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Logging LoggingConfig

	// Background jobs
	Jobs JobsConfig

	// DemoSeed loads the embedded demo tour on startup
	DemoSeed bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the connection string for the database.
func (d DatabaseConfig) DSN() string {
	return d.URL
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AuthConfig holds bearer token verification settings
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// MapsConfig holds Google Maps Platform settings
type MapsConfig struct {
	APIKey         string
	RoutesTimeout  time.Duration
	GeocodeTimeout time.Duration
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// JobsConfig holds settings of the logistics refresh job
type JobsConfig struct {
	RefreshCron string // empty disables the job
	RefreshDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load(EnvFile)

	cfg := &Config{}

	db, err := loadDatabase()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	cfg.Database = db

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	cfg.Auth.JWTSecret = os.Getenv("AUTH_JWT_SECRET")
	cfg.Auth.JWTIssuer = os.Getenv("AUTH_JWT_ISSUER")

	if err := cfg.loadMaps(); err != nil {
		return nil, fmt.Errorf("load maps config: %w", err)
	}

	cfg.loadCORS()
	cfg.loadLogging()

	if err := cfg.loadJobs(); err != nil {
		return nil, fmt.Errorf("load jobs config: %w", err)
	}

	seed, err := parseBool("DEMO_SEED")
	if err != nil {
		return nil, err
	}
	cfg.DemoSeed = seed

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings. Used by tooling that
// does not serve requests.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load(EnvFile)

	db, err := loadDatabase()
	if err != nil {
		return DatabaseConfig{}, err
	}
	if db.URL == "" {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	return db, nil
}

func loadDatabase() (DatabaseConfig, error) {
	var d DatabaseConfig
	d.URL = os.Getenv("DATABASE_URL")
	if d.URL != "" {
		return d, nil
	}

	d.Host = getEnvOrDefault("DB_HOST", "localhost")
	d.User = os.Getenv("DB_USER")
	d.Password = os.Getenv("DB_PASSWORD")
	d.Name = os.Getenv("DB_NAME")
	d.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return d, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	d.Port = port

	if d.Host != "" && d.User != "" && d.Name != "" {
		d.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
		)
	}

	return d, nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadMaps() error {
	c.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	routes, err := parseDuration("MAPS_ROUTES_TIMEOUT", 25*time.Second)
	if err != nil {
		return err
	}
	geocode, err := parseDuration("MAPS_GEOCODE_TIMEOUT", 20*time.Second)
	if err != nil {
		return err
	}
	c.Maps.RoutesTimeout = routes
	c.Maps.GeocodeTimeout = geocode
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default for local development
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
		return
	}

	for _, origin := range strings.Split(originsEnv, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, trimmed)
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

func (c *Config) loadJobs() error {
	c.Jobs.RefreshCron = strings.TrimSpace(os.Getenv("LOGISTICS_REFRESH_CRON"))

	days, err := strconv.Atoi(getEnvOrDefault("LOGISTICS_REFRESH_DAYS", "2"))
	if err != nil {
		return fmt.Errorf("invalid LOGISTICS_REFRESH_DAYS: %w", err)
	}
	c.Jobs.RefreshDays = days
	return nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if c.Auth.JWTSecret == "" {
		errors = append(errors, "AUTH_JWT_SECRET is required")
	} else if len(c.Auth.JWTSecret) < 16 {
		errors = append(errors, "AUTH_JWT_SECRET must be at least 16 characters")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	if c.Maps.RoutesTimeout <= 0 || c.Maps.GeocodeTimeout <= 0 {
		errors = append(errors, "MAPS_ROUTES_TIMEOUT and MAPS_GEOCODE_TIMEOUT must be positive")
	}

	if c.Jobs.RefreshDays < 1 {
		errors = append(errors, "LOGISTICS_REFRESH_DAYS must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBool(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
