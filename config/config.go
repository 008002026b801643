// Package config provides configuration management for the storefront.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Storage backends understood by StorageConfig.Backend.
const (
	BackendFile    = "file"
	BackendMemory  = "memory"
	BackendRedis   = "redis"
	BackendMongoDB = "mongodb"
)

// Config holds the complete application configuration.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Storage StorageConfig
	Cart    CartConfig
	Search  SearchConfig
	Auth    AuthConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server configuration for the BFF.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// APIConfig describes the upstream shop API.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// StorageConfig selects and configures the key-value backend that holds
// the cart and the session.
type StorageConfig struct {
	Backend string
	Dir     string
	TTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CartConfig holds the pricing rules applied to the cart.
type CartConfig struct {
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

// SearchConfig holds autocomplete and filter-cache settings.
type SearchConfig struct {
	SuggestDebounce  time.Duration
	SuggestMinLength int
	SuggestLimit     int
	FilterCacheTTL   time.Duration
}

// AuthConfig holds BFF session token configuration.
type AuthConfig struct {
	JWTSecretKey     string
	SessionTTL       time.Duration
	SessionCacheSize int
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables. A .env file in the
// working directory is read first when present; real environment
// variables win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		API: APIConfig{
			BaseURL:                        strings.TrimRight(getEnv("STOREFRONT_API_URL", "http://localhost:8081/api"), "/"),
			Timeout:                        getEnvDuration("API_TIMEOUT", 10*time.Second),
			UserAgent:                      getEnv("API_USER_AGENT", "storefront/1.0"),
			CircuitBreakerFailureThreshold: getEnvInt("API_CB_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("API_CB_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("API_CB_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Backend:                        strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
			Dir:                            getEnv("STORAGE_DIR", defaultStorageDir()),
			TTL:                            getEnvDuration("STORAGE_TTL", 0),
			RedisAddr:                      getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:                  getEnv("REDIS_PASSWORD", ""),
			RedisDB:                        getEnvInt("REDIS_DB", 0),
			RedisPrefix:                    getEnv("REDIS_PREFIX", "storefront:"),
			MongoURI:                       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDatabase:                  getEnv("MONGODB_DATABASE", "storefront"),
			MongoCollection:                getEnv("MONGODB_COLLECTION", "kv"),
			CircuitBreakerFailureThreshold: getEnvInt("STORAGE_CB_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("STORAGE_CB_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("STORAGE_CB_TIMEOUT", 30*time.Second),
		},
		Cart: CartConfig{
			ShippingFee:           getEnvDecimal("SHIPPING_FEE", decimal.RequireFromString("29.99")),
			FreeShippingThreshold: getEnvDecimal("FREE_SHIPPING_THRESHOLD", decimal.NewFromInt(1000)),
			TaxRate:               getEnvDecimal("TAX_RATE", decimal.RequireFromString("0.18")),
		},
		Search: SearchConfig{
			SuggestDebounce:  getEnvDuration("SUGGEST_DEBOUNCE", 300*time.Millisecond),
			SuggestMinLength: getEnvInt("SUGGEST_MIN_LENGTH", 2),
			SuggestLimit:     getEnvInt("SUGGEST_LIMIT", 5),
			FilterCacheTTL:   getEnvDuration("FILTER_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecretKey:     getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			SessionTTL:       getEnvDuration("SESSION_TTL", 24*time.Hour),
			SessionCacheSize: getEnvInt("SESSION_CACHE_SIZE", 1000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

// Validate reports configuration values the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendMongoDB:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid STOREFRONT_API_URL %q", c.API.BaseURL))
	}

	if !c.Cart.TaxRate.IsPositive() {
		errs = append(errs, errors.New("TAX_RATE must be positive"))
	}
	if c.Cart.ShippingFee.IsNegative() {
		errs = append(errs, errors.New("SHIPPING_FEE must not be negative"))
	}

	return errors.Join(errs...)
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
