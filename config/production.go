// Package config provides configuration management and environment variable handling for the application
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/ppp-rental/utils"
	"github.com/joho/godotenv"
)

// ProductionConfig holds all configuration for production environment
type ProductionConfig struct {
	Database   DatabaseConfig   `json:"database"`
	Server     ServerConfig     `json:"server"`
	Security   SecurityConfig   `json:"security"`
	JWT        JWTConfig        `json:"jwt"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
	Cache      CacheConfig      `json:"cache"`
	Quote      QuoteConfig      `json:"quote"`
	PublicAPI  PublicAPIConfig  `json:"public_api"`
	Deployment DeploymentConfig `json:"deployment"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	SlowQueryLog    bool          `json:"slow_query_log"`
	SlowQueryTime   time.Duration `json:"slow_query_time"`
	AutoMigrate     bool          `json:"auto_migrate"`
}

type ServerConfig struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout"`
	BodyLimit         int           `json:"body_limit"`
	TrustedProxies    []string      `json:"trusted_proxies"`
	ProxyHeader       string        `json:"proxy_header"`
	EnableCompression bool          `json:"enable_compression"`
}

type SecurityConfig struct {
	// CORS
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	CORSMaxAge       int      `json:"cors_max_age"`

	// Rate Limiting
	PublicRateLimit int           `json:"public_rate_limit"` // requests per minute
	GlobalRateLimit int           `json:"global_rate_limit"` // requests per minute
	RateLimitWindow time.Duration `json:"rate_limit_window"`

	// Content Security
	XFrameOptions  string `json:"x_frame_options"`
	ReferrerPolicy string `json:"referrer_policy"`
}

type JWTConfig struct {
	SecretKey      string        `json:"secret_key"`
	AccessTokenTTL time.Duration `json:"access_token_ttl"`
	Issuer         string        `json:"issuer"`
	Audience       string        `json:"audience"`
}

type LoggingConfig struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Format     string `json:"format"` // json, console
	Output     string `json:"output"` // stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"`
	EnableAccessLog  bool `json:"enable_access_log"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type CacheConfig struct {
	Enabled     bool          `json:"enabled"`
	RedisURL    string        `json:"redis_url"`
	RedisDB     int           `json:"redis_db"`
	RedisPrefix string        `json:"redis_prefix"`
	DefaultTTL  time.Duration `json:"default_ttl"`
}

// QuoteConfig drives pricing totals, numbering and the printed documents.
type QuoteConfig struct {
	VATRate                         float64       `json:"vat_rate"`
	DefaultPricingSchemaID          uint          `json:"default_pricing_schema_id"`
	Timezone                        string        `json:"timezone"`
	NumberingStrategy               string        `json:"numbering_strategy"` // count, counter
	NumberingMaxRetries             int           `json:"numbering_max_retries"`
	NumberingLockTTL                time.Duration `json:"numbering_lock_ttl"`
	GuestPrefix                     string        `json:"guest_prefix"`
	CompanyName                     string        `json:"company_name"`
	DefaultServiceRatePerTechnician float64       `json:"default_service_rate_per_technician"`
	DefaultTravelRatePerKm          float64       `json:"default_travel_rate_per_km"`
}

// PublicAPIConfig lists keys seeded at startup as name:key:perm|perm triples.
type PublicAPIConfig struct {
	BootstrapKeys []string `json:"bootstrap_keys"`
}

type DeploymentConfig struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
	CommitHash  string `json:"commit_hash"`
	BuildTime   string `json:"build_time"`
}

// LoadProductionConfig loads and validates configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &ProductionConfig{
		Database: DatabaseConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnvString("DB_NAME", "ppp"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", ""),
			SSLMode:         getEnvString("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
			SlowQueryLog:    getEnvBool("DB_SLOW_QUERY_LOG", true),
			SlowQueryTime:   getEnvDuration("DB_SLOW_QUERY_TIME", 1*time.Second),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Server: ServerConfig{
			Host:              getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:              getEnvInt("SERVER_PORT", 3001),
			ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout:   getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:         getEnvInt("SERVER_BODY_LIMIT", 4*1024*1024), // 4MB
			TrustedProxies:    getEnvStringSlice("SERVER_TRUSTED_PROXIES", []string{"127.0.0.1"}),
			ProxyHeader:       getEnvString("SERVER_PROXY_HEADER", "X-Real-IP"),
			EnableCompression: getEnvBool("SERVER_ENABLE_COMPRESSION", true),
		},
		Security: SecurityConfig{
			AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-API-Key"}),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
			CORSMaxAge:       getEnvInt("CORS_MAX_AGE", utils.CORSMaxAge),
			PublicRateLimit:  getEnvInt("PUBLIC_RATE_LIMIT", 60),
			GlobalRateLimit:  getEnvInt("GLOBAL_RATE_LIMIT", 2000),
			RateLimitWindow:  getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
			XFrameOptions:    getEnvString("X_FRAME_OPTIONS", "SAMEORIGIN"),
			ReferrerPolicy:   getEnvString("REFERRER_POLICY", "strict-origin-when-cross-origin"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnvString("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", utils.AccessTokenTTL),
			Issuer:         getEnvString("JWT_ISSUER", "ppp-rental"),
			Audience:       getEnvString("JWT_AUDIENCE", "ppp-rental-api"),
		},
		Logging: LoggingConfig{
			Level:            getEnvString("LOG_LEVEL", "info"),
			Format:           getEnvString("LOG_FORMAT", "json"),
			Output:           getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:         getEnvString("LOG_FILE_PATH", "/var/log/ppp/app.log"),
			MaxSize:          getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups:       getEnvInt("LOG_MAX_BACKUPS", 10),
			MaxAge:           getEnvInt("LOG_MAX_AGE", 30),
			Compress:         getEnvBool("LOG_COMPRESS", true),
			EnableCaller:     getEnvBool("LOG_ENABLE_CALLER", true),
			EnableStacktrace: getEnvBool("LOG_ENABLE_STACKTRACE", false),
			EnableAccessLog:  getEnvBool("LOG_ENABLE_ACCESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
		Cache: CacheConfig{
			Enabled:     getEnvBool("CACHE_ENABLED", false),
			RedisURL:    getEnvString("CACHE_REDIS_URL", "redis://localhost:6379"),
			RedisDB:     getEnvInt("CACHE_REDIS_DB", 0),
			RedisPrefix: getEnvString("CACHE_REDIS_PREFIX", "ppp:"),
			DefaultTTL:  getEnvDuration("CACHE_DEFAULT_TTL", 5*time.Minute),
		},
		Quote: QuoteConfig{
			VATRate:                         getEnvFloat("QUOTE_VAT_RATE", utils.VATRate),
			DefaultPricingSchemaID:          uint(getEnvInt("QUOTE_DEFAULT_PRICING_SCHEMA_ID", utils.DefaultPricingSchemaID)),
			Timezone:                        getEnvString("QUOTE_TIMEZONE", "Europe/Warsaw"),
			NumberingStrategy:               getEnvString("QUOTE_NUMBERING_STRATEGY", "count"),
			NumberingMaxRetries:             getEnvInt("QUOTE_NUMBERING_MAX_RETRIES", 3),
			NumberingLockTTL:                getEnvDuration("QUOTE_NUMBERING_LOCK_TTL", 5*time.Second),
			GuestPrefix:                     getEnvString("QUOTE_GUEST_PREFIX", "GUE"),
			CompanyName:                     getEnvString("QUOTE_COMPANY_NAME", "Sebastian Popiel :: PPP :: Program"),
			DefaultServiceRatePerTechnician: getEnvFloat("QUOTE_DEFAULT_SERVICE_RATE_PER_TECHNICIAN", 150),
			DefaultTravelRatePerKm:          getEnvFloat("QUOTE_DEFAULT_TRAVEL_RATE_PER_KM", 1.15),
		},
		PublicAPI: PublicAPIConfig{
			BootstrapKeys: getEnvStringSlice("PUBLIC_API_BOOTSTRAP_KEYS", []string{}),
		},
		Deployment: DeploymentConfig{
			Environment: getEnvString("APP_ENV", "production"),
			Version:     getEnvString("VERSION", "1.0.0"),
			CommitHash:  getEnvString("COMMIT_HASH", "unknown"),
			BuildTime:   getEnvString("BUILD_TIME", "unknown"),
		},
	}

	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile loads path when it exists. Variables already set in the process win.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// BootstrapKey is one parsed entry of PublicAPIConfig.BootstrapKeys.
type BootstrapKey struct {
	Name        string
	Key         string
	Permissions []string
}

// ParseBootstrapKeys parses name:key:perm|perm entries.
func ParseBootstrapKeys(entries []string) ([]BootstrapKey, error) {
	keys := make([]BootstrapKey, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid bootstrap key entry %q", entry)
		}
		var perms []string
		for _, p := range strings.Split(parts[2], "|") {
			if p = strings.TrimSpace(p); p != "" {
				perms = append(perms, p)
			}
		}
		keys = append(keys, BootstrapKey{Name: parts[0], Key: parts[1], Permissions: perms})
	}
	return keys, nil
}

// ValidateProductionConfig validates the production configuration
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var errs []error

	// Database
	if cfg.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		errs = append(errs, errors.New("DB_PORT must be between 1 and 65535"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}

	// JWT
	if len(cfg.JWT.SecretKey) < 32 {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be at least 32 characters long"))
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TOKEN_TTL must be positive"))
	}

	// Server
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, errors.New("SERVER_PORT must be between 1 and 65535"))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_SHUTDOWN_TIMEOUT must be positive"))
	}

	// Logging
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.Logging.Level) {
		errs = append(errs, errors.New("LOG_LEVEL must be one of: debug, info, warn, error"))
	}
	if !slices.Contains([]string{"stdout", "file", "both"}, cfg.Logging.Output) {
		errs = append(errs, errors.New("LOG_OUTPUT must be one of: stdout, file, both"))
	}
	if cfg.Logging.Output != "stdout" && cfg.Logging.FilePath == "" {
		errs = append(errs, errors.New("LOG_FILE_PATH is required when logging to a file"))
	}

	// Cache
	if cfg.Cache.Enabled && cfg.Cache.RedisURL == "" {
		errs = append(errs, errors.New("CACHE_REDIS_URL is required when cache is enabled"))
	}

	// Quote
	if cfg.Quote.VATRate < 0 || cfg.Quote.VATRate >= 1 {
		errs = append(errs, errors.New("QUOTE_VAT_RATE must be in [0, 1)"))
	}
	if cfg.Quote.NumberingStrategy != "count" && cfg.Quote.NumberingStrategy != "counter" {
		errs = append(errs, errors.New("QUOTE_NUMBERING_STRATEGY must be count or counter"))
	}
	if cfg.Quote.NumberingMaxRetries < 1 {
		errs = append(errs, errors.New("QUOTE_NUMBERING_MAX_RETRIES must be at least 1"))
	}
	if cfg.Quote.GuestPrefix == "" {
		errs = append(errs, errors.New("QUOTE_GUEST_PREFIX is required"))
	}

	// Public API
	if _, err := ParseBootstrapKeys(cfg.PublicAPI.BootstrapKeys); err != nil {
		errs = append(errs, fmt.Errorf("PUBLIC_API_BOOTSTRAP_KEYS: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}
