package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/contentgrid/rulegrid/internal/grid"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*GridConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultGridConfig
	v.SetDefault("grid.database_url", "sqlite://rulegrid.db")
	v.SetDefault("grid.page_size", grid.DefaultPageSize)
	v.SetDefault("grid.user", "Current User")
	v.SetDefault("grid.log_level", "info")
	v.SetDefault("grid.log_format", "text")

	// Bind environment variables with RG_ prefix
	v.SetEnvPrefix("RG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &GridConfig{
		DatabaseURL: v.GetString("grid.database_url"),
		PageSize:    v.GetInt("grid.page_size"),
		User:        v.GetString("grid.user"),
		LogLevel:    v.GetString("grid.log_level"),
		LogFormat:   v.GetString("grid.log_format"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the page size against the supported sizes and the
// log settings against the known levels and formats.
func validateConfig(cfg *GridConfig) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url must not be empty")
	}
	if !grid.ValidPageSize(cfg.PageSize) {
		return fmt.Errorf("page_size must be one of %v, got %d", grid.PageSizes, cfg.PageSize)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}
	return nil
}
