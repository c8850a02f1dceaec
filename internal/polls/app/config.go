package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite file (default: ./polls.db)
	DatabaseURL    string // Postgres DSN, required for the postgres driver
	PepperFile     string // Password pepper, created when missing (default: ./pepper)

	Issuer          string        // iss claim (default: polls-api)
	Algorithm       string        // EdDSA or HS256 (default: EdDSA)
	JWTSecret       string        // HS256 shared secret
	KeyFile         string        // Optional PKCS8 Ed25519 key; ephemeral keys otherwise
	KeyID           string        // kid for file or secret keys
	NumKeys         int           // Ephemeral EdDSA keys (default: 1)
	AccessTokenTTL  time.Duration // default: 15m
	RefreshTokenTTL time.Duration // default: 7 days
	RotateRefresh   bool          // Return a new refresh token from /token/refresh

	AllowAdminSignup bool             // Accept user_type=admin on /register (default: true)
	Admin            domain.AdminSeed // Seeded at start when username and password are set
	MaxPageSize      int              // Cap for list limits (default: 100)
}

// LoadConfig reads the environment. Variables from POLLS_ENV_FILE (default
// .env) are loaded first when the file exists; the real environment wins.
func LoadConfig() (Config, error) {
	envFile := getEnvOrDefault("POLLS_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("POLLS_DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   getEnvOrDefault("POLLS_DATABASE_FILE", "polls.db"),
		DatabaseURL:    os.Getenv("POLLS_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("POLLS_PEPPER_FILE", "pepper"),

		Issuer:          getEnvOrDefault("POLLS_ISSUER", "polls-api"),
		Algorithm:       getEnvOrDefault("POLLS_JWT_ALGORITHM", jwtx.AlgorithmEdDSA),
		JWTSecret:       os.Getenv("POLLS_JWT_SECRET"),
		KeyFile:         os.Getenv("POLLS_JWT_KEY_FILE"),
		KeyID:           getEnvOrDefault("POLLS_JWT_KEY_ID", "polls-key-001"),
		NumKeys:         getEnvIntOrDefault("POLLS_JWT_NUM_KEYS", 1),
		AccessTokenTTL:  getEnvDurationOrDefault("POLLS_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("POLLS_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		RotateRefresh:   getEnvBoolOrDefault("POLLS_ROTATE_REFRESH_TOKENS", false),

		AllowAdminSignup: getEnvBoolOrDefault("POLLS_ALLOW_ADMIN_SIGNUP", true),
		Admin: domain.AdminSeed{
			Username:  os.Getenv("POLLS_ADMIN_USERNAME"),
			Password:  os.Getenv("POLLS_ADMIN_PASSWORD"),
			FirstName: getEnvOrDefault("POLLS_ADMIN_FIRST_NAME", "Admin"),
			LastName:  getEnvOrDefault("POLLS_ADMIN_LAST_NAME", "User"),
		},
		MaxPageSize: getEnvIntOrDefault("POLLS_MAX_PAGE_SIZE", 100),
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("POLLS_DATABASE_FILE is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("POLLS_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown POLLS_DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.Algorithm {
	case jwtx.AlgorithmEdDSA:
	case jwtx.AlgorithmHS256:
		if len(c.JWTSecret) < jwtx.MinHS256SecretSize {
			return fmt.Errorf("POLLS_JWT_SECRET must be at least %d bytes for HS256", jwtx.MinHS256SecretSize)
		}
	default:
		return fmt.Errorf("unknown POLLS_JWT_ALGORITHM %q", c.Algorithm)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.MaxPageSize <= 0 {
		return errors.New("POLLS_MAX_PAGE_SIZE must be positive")
	}
	if (c.Admin.Username == "") != (c.Admin.Password == "") {
		return errors.New("POLLS_ADMIN_USERNAME and POLLS_ADMIN_PASSWORD must be set together")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
