package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		ReadTimeout    string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret         string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
		Issuer            string `yaml:"issuer" env:"AUTH_ISSUER"`
		Audience          string `yaml:"audience" env:"AUTH_AUDIENCE"`
		Leeway            string `yaml:"leeway" env:"AUTH_LEEWAY"`
		SignInPath        string `yaml:"sign_in_path" env:"AUTH_SIGN_IN_PATH"`
		ProviderLogoutURL string `yaml:"provider_logout_url" env:"AUTH_PROVIDER_LOGOUT_URL"`
		ProviderTimeout   string `yaml:"provider_timeout" env:"AUTH_PROVIDER_TIMEOUT"`
	} `yaml:"auth"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Pagination struct {
		DefaultSize int `yaml:"default_size" env:"PAGINATION_DEFAULT_SIZE"`
		MaxSize     int `yaml:"max_size" env:"PAGINATION_MAX_SIZE"`
	} `yaml:"pagination"`
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig layers defaults, the YAML file at configPath (optional) and env
// overrides, then validates the result.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	raw, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("bad environment override: %w", err)
	}
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = []string{"http://localhost:5173"}
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"

	// Database defaults
	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "uniconnect"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	// Auth defaults
	config.Auth.Leeway = "30s"
	config.Auth.SignInPath = "/auth"
	config.Auth.ProviderTimeout = "10s"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Pagination defaults
	config.Pagination.DefaultSize = 20
	config.Pagination.MaxSize = 100
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q (want %s or %s)", config.Database.Driver, DriverPostgres, DriverMemory)
	}

	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if !strings.HasPrefix(config.Auth.SignInPath, "/") && !strings.HasPrefix(config.Auth.SignInPath, "http") {
		return fmt.Errorf("sign-in path must be absolute: %q", config.Auth.SignInPath)
	}

	durations := map[string]string{
		"server read timeout":  config.Server.ReadTimeout,
		"server write timeout": config.Server.WriteTimeout,
		"auth leeway":          config.Auth.Leeway,
		"provider timeout":     config.Auth.ProviderTimeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Pagination.MaxSize <= 0 || config.Pagination.DefaultSize <= 0 || config.Pagination.DefaultSize > config.Pagination.MaxSize {
		return fmt.Errorf("pagination sizes must satisfy 0 < default_size <= max_size")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production" || c.Server.Mode == "release"
}
