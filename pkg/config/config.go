package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Dataset source kinds
const (
	SourceAuto     = "auto"
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Dataset (Record Source)
	Dataset DatasetConfig

	// Dashboard YAML (tiers, display defaults, refresh schedule)
	DashboardConfigPath string

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// API
	API APIConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatasetConfig describes where the raw customer snapshot comes from
type DatasetConfig struct {
	Source string // auto, csv, xlsx, postgres
	Path   string // file path for csv/xlsx
	Sheet  string // xlsx sheet name (empty = first sheet)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	CacheTTL time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// APIConfig holds HTTP API limits
type APIConfig struct {
	RateLimit float64 // requests per second, 0 = unlimited
	RateBurst int

	// TrustedProxies are IPs or CIDRs whose X-Forwarded-For is believed.
	// Empty = the direct peer is always the client.
	TrustedProxies []string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Dataset: DatasetConfig{
			Source: strings.ToLower(getEnv("DATASET_SOURCE", SourceAuto)),
			Path:   getEnv("DATASET_PATH", "data/cleaned_banking.csv"),
			Sheet:  getEnv("DATASET_SHEET", ""),
		},

		DashboardConfigPath: getEnv("DASHBOARD_CONFIG", ""),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			CacheTTL: getEnvAsDuration("CACHE_TTL", "10m"),
		},

		API: APIConfig{
			RateLimit: getEnvAsFloat("API_RATE_LIMIT", 20),
			RateBurst: getEnvAsInt("API_RATE_BURST", 40),

			TrustedProxies: getEnvAsList("API_TRUSTED_PROXIES"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ResolvedSource returns the concrete dataset source, resolving "auto" by file extension
func (c *Config) ResolvedSource() string {
	if c.Dataset.Source != SourceAuto {
		return c.Dataset.Source
	}

	switch strings.ToLower(filepath.Ext(c.Dataset.Path)) {
	case ".xlsx":
		return SourceXLSX
	case ".csv":
		return SourceCSV
	}
	if c.Database.URL != "" {
		return SourcePostgres
	}
	return SourceCSV
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Dataset.Source {
	case SourceAuto, SourceCSV, SourceXLSX, SourcePostgres:
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: auto, csv, xlsx, postgres")
	}

	switch c.ResolvedSource() {
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres dataset source")
		}
	default:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for file dataset sources")
		}
	}

	if c.API.RateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must be >= 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
