package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultExportHeaders = []string{
	"SKU",
	"Nombre",
	"Categoría",
	"Material",
	"Precio",
	"Precio con Descuento 35%",
	"Última Modificación",
}

type Config struct {
	// API Configuration
	APIPort     string
	APIHost     string
	CORSOrigins []string

	// Upstream WooCommerce store
	UpstreamURL    string
	ConsumerKey    string
	ConsumerSecret string

	// Performance
	PageSize           int
	MaxPageSize        int
	MaxPages           int
	FastLoadLimit      int
	RequestTimeout     time.Duration
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration
	ThrottleEvery      int
	ThrottlePause      time.Duration

	// Catalog presentation
	DiscountPercent   float64
	DisplayDateLayout string
	AppVersion        string

	// Export
	ExportHeaders   []string
	ExportDelimiter string
	ExportFilename  string
	ExportDir       string

	// Optional infrastructure
	RedisURL     string
	DatabaseURL  string
	KafkaBrokers string
	KafkaTopic   string

	// Environment
	Env      string
	LogLevel string
}

// ConfigError reports a missing or invalid setting found at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		APIHost:            getEnv("API_HOST", "0.0.0.0"),
		CORSOrigins:        getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		UpstreamURL:        getEnv("WOO_API_URL", ""),
		ConsumerKey:        getEnv("WOO_CONSUMER_KEY", ""),
		ConsumerSecret:     getEnv("WOO_CONSUMER_SECRET", ""),
		PageSize:           getEnvAsInt("PAGE_SIZE", 100),
		MaxPageSize:        getEnvAsInt("MAX_PAGE_SIZE", 100),
		MaxPages:           getEnvAsInt("MAX_PAGES", 10),
		FastLoadLimit:      getEnvAsInt("FAST_LOAD_LIMIT", 100),
		RequestTimeout:     getEnvAsMillis("REQUEST_TIMEOUT_MS", 30*time.Second),
		CacheTTL:           getEnvAsMillis("CACHE_TTL_MS", 5*time.Minute),
		CacheSweepInterval: getEnvAsMillis("CACHE_SWEEP_INTERVAL_MS", time.Minute),
		ThrottleEvery:      getEnvAsInt("THROTTLE_EVERY", 3),
		ThrottlePause:      getEnvAsMillis("THROTTLE_PAUSE_MS", 100*time.Millisecond),
		DiscountPercent:    getEnvAsFloat("DISCOUNT_PERCENT", 35),
		DisplayDateLayout:  getEnv("DISPLAY_DATE_LAYOUT", "02/01/2006, 15:04"),
		AppVersion:         getEnv("APP_VERSION", "2.0.0"),
		ExportHeaders:      getEnvAsList("EXPORT_HEADERS", defaultExportHeaders),
		ExportDelimiter:    getEnv("EXPORT_DELIMITER", ","),
		ExportFilename:     getEnv("EXPORT_FILENAME", "productos_felmel"),
		ExportDir:          getEnv("EXPORT_DIR", "exports"),
		RedisURL:           getEnv("REDIS_URL", ""),
		DatabaseURL:        getEnv("DATABASE_URL", "sqlite://file::memory:?cache=shared"),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "catalog-events"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in settings without reading the environment.
func Default() *Config {
	return &Config{
		APIPort:            "8080",
		APIHost:            "0.0.0.0",
		CORSOrigins:        []string{"*"},
		PageSize:           100,
		MaxPageSize:        100,
		MaxPages:           10,
		FastLoadLimit:      100,
		RequestTimeout:     30 * time.Second,
		CacheTTL:           5 * time.Minute,
		CacheSweepInterval: time.Minute,
		ThrottleEvery:      3,
		ThrottlePause:      100 * time.Millisecond,
		DiscountPercent:    35,
		DisplayDateLayout:  "02/01/2006, 15:04",
		AppVersion:         "2.0.0",
		ExportHeaders:      append([]string(nil), defaultExportHeaders...),
		ExportDelimiter:    ",",
		ExportFilename:     "productos_felmel",
		ExportDir:          "exports",
		DatabaseURL:        "sqlite://file::memory:?cache=shared",
		KafkaTopic:         "catalog-events",
		Env:                "development",
		LogLevel:           "info",
	}
}

func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"WOO_API_URL", c.UpstreamURL},
		{"WOO_CONSUMER_KEY", c.ConsumerKey},
		{"WOO_CONSUMER_SECRET", c.ConsumerSecret},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigError{Field: r.field, Reason: "is required"}
		}
	}

	positive := []struct {
		field string
		value int
	}{
		{"PAGE_SIZE", c.PageSize},
		{"MAX_PAGE_SIZE", c.MaxPageSize},
		{"MAX_PAGES", c.MaxPages},
		{"FAST_LOAD_LIMIT", c.FastLoadLimit},
		{"THROTTLE_EVERY", c.ThrottleEvery},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &ConfigError{Field: p.field, Reason: "must be positive"}
		}
	}

	if c.RequestTimeout <= 0 {
		return &ConfigError{Field: "REQUEST_TIMEOUT_MS", Reason: "must be positive"}
	}
	if c.CacheTTL <= 0 {
		return &ConfigError{Field: "CACHE_TTL_MS", Reason: "must be positive"}
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		return &ConfigError{Field: "DISCOUNT_PERCENT", Reason: "must be between 0 and 100"}
	}
	if c.ExportDelimiter == "" {
		return &ConfigError{Field: "EXPORT_DELIMITER", Reason: "must not be empty"}
	}
	if len(c.ExportHeaders) != 7 {
		return &ConfigError{Field: "EXPORT_HEADERS", Reason: "must list exactly 7 column labels"}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsMillis(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value; labels themselves may not contain commas.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
