package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWTSecret   string
	// BaseURL is the externally visible URL used to build share links.
	BaseURL     string
	StorageRoot string
	CORSOrigins string
}

// minJWTSecretLength matches the startup requirements check of the original
// deployment tooling.
const minJWTSecretLength = 8

// Load reads configuration from the environment and validates the parts that
// would otherwise fail at first use.
func Load() (*Config, error) {
	databaseURL, err := LoadDatabaseURL()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DatabaseURL: databaseURL,
		JWTSecret:   os.Getenv("JWT_SECRET"),
		BaseURL:     os.Getenv("BASE_URL"),
		StorageRoot: getEnv("STORAGE_ROOT", "client_folders"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}
	if len(cfg.JWTSecret) < minJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET too short, should be at least %d characters", minJWTSecretLength)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BASE_URL is required to build share links")
	}

	return cfg, nil
}

// LoadDatabaseURL resolves just the database connection URL, for tools that
// need nothing else from the environment.
func LoadDatabaseURL() (string, error) {
	url := getEnv("DATABASE_URL", buildDatabaseURL())
	if url == "" {
		return "", fmt.Errorf("database configuration not found: set DATABASE_URL or DB_USER/DB_HOST/DB_NAME/DB_PASSWORD/DB_PORT")
	}
	return url, nil
}

// buildDatabaseURL assembles a connection URL from the discrete DB_* variables
// used by the original deployment. Returns "" when they are not set.
func buildDatabaseURL() string {
	user := os.Getenv("DB_USER")
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	password := os.Getenv("DB_PASSWORD")
	port := os.Getenv("DB_PORT")

	if user == "" || host == "" || name == "" || password == "" || port == "" {
		return ""
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
