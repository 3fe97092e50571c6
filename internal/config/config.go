package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Database Database `json:"database" mapstructure:"database"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Path     string `json:"path" mapstructure:"path"` // sqlite database file
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			return nil
		}
	}
	return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
}

// DatabaseURL resolves the connection string: the URLEnv environment variable
// wins when set, otherwise the URL is composed from DB_USER, DB_PASSWORD,
// DB_HOST and DB_NAME (or the configured file path for sqlite).
func (c *Config) DatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.URLEnvName()); dbURL != "" {
		return dbURL, nil
	}

	switch c.Database.Provider {
	case "sqlite", "sqlite3":
		if c.Database.Path != "" {
			return c.Database.Path, nil
		}
		if name := os.Getenv("DB_NAME"); name != "" {
			return name, nil
		}
		return "", fmt.Errorf("sqlite database path not set (database.path or DB_NAME)")
	}

	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	if user == "" || password == "" || host == "" || name == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s and DB_USER/DB_PASSWORD/DB_HOST/DB_NAME are not all set", c.URLEnvName())
	}

	switch c.Database.Provider {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s)/%s", user, password, host, name), nil
	default:
		return fmt.Sprintf("postgres://%s:%s@%s/%s", user, password, host, name), nil
	}
}

func (c *Config) URLEnvName() string {
	if c.Database.URLEnv != "" {
		return c.Database.URLEnv
	}
	return "DATABASE_URL"
}
