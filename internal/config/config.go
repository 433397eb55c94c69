package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Billing  BillingConfig
	AI       AIConfig
	Jobs     JobsConfig
	Access   AccessConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// RequestTimeout bounds the context every handler runs with
	RequestTimeout time.Duration
	FrontendURL    string
	Environment    string
	RateLimitRPS   float64
	RateLimitBurst int
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains identity provider configuration. When JWKSIssuer is
// set tokens are verified against the issuer's key set, otherwise JWTSecret
// is used as an HS256 shared secret.
type AuthConfig struct {
	SessionCookie string
	JWTSecret     string
	TokenExpiry   time.Duration
	JWKSIssuer    string
	JWKSAudience  string
	JWKSURL       string
}

// BillingConfig contains payment provider configuration
type BillingConfig struct {
	StripeSecretKey string
	// PriceTiers maps a provider price id to a subscription tier
	PriceTiers map[string]string
}

// AIConfig contains LLM configuration for job execution
type AIConfig struct {
	OpenAIAPIKey string
	Model        string
	MaxTokens    int
}

// JobsConfig contains background job runner configuration
type JobsConfig struct {
	Enabled          bool
	Schedule         string
	BatchSize        int
	ExecutionTimeout time.Duration
	RefreshCooldown  time.Duration
}

// AccessConfig points at an optional entitlement table override
type AccessConfig struct {
	EntitlementsFile string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 10*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 50),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 100),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "fitcoach"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./fitcoach.db"),
		},
		Auth: AuthConfig{
			SessionCookie: getEnv("AUTH_SESSION_COOKIE", "accessToken"),
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenExpiry:   getEnvAsDuration("JWT_TOKEN_EXPIRY", time.Hour),
			JWKSIssuer:    getEnv("AUTH_JWKS_ISSUER", ""),
			JWKSAudience:  getEnv("AUTH_JWKS_AUDIENCE", ""),
			JWKSURL:       getEnv("AUTH_JWKS_URL", ""),
		},
		Billing: BillingConfig{
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			PriceTiers:      getEnvAsMap("STRIPE_PRICE_TIERS"),
		},
		AI: AIConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:    getEnvAsInt("OPENAI_MAX_TOKENS", 400),
		},
		Jobs: JobsConfig{
			Enabled:          getEnvAsBool("JOBS_ENABLED", true),
			Schedule:         getEnv("JOBS_SCHEDULE", "@every 30s"),
			BatchSize:        getEnvAsInt("JOBS_BATCH_SIZE", 5),
			ExecutionTimeout: getEnvAsDuration("JOBS_EXECUTION_TIMEOUT", 2*time.Minute),
			RefreshCooldown:  getEnvAsDuration("JOBS_REFRESH_COOLDOWN", 24*time.Hour),
		},
		Access: AccessConfig{
			EntitlementsFile: getEnv("ENTITLEMENTS_FILE", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWKSIssuer == "" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("either JWT_SECRET or AUTH_JWKS_ISSUER must be set")
	}
	if c.Auth.JWKSIssuer != "" && c.Auth.JWKSAudience == "" {
		return fmt.Errorf("AUTH_JWKS_AUDIENCE is required when AUTH_JWKS_ISSUER is set")
	}
	if c.Auth.SessionCookie == "" {
		return fmt.Errorf("AUTH_SESSION_COOKIE must not be empty")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Jobs.BatchSize < 1 {
		return fmt.Errorf("JOBS_BATCH_SIZE must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions

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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsMap parses "k1:v1,k2:v2". Malformed pairs are skipped.
func getEnvAsMap(key string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(os.Getenv(key), ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || k == "" || v == "" {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
