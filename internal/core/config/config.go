// Package config provides configuration management for the rule grid.
package config

// GridConfig holds configuration for the grid engine and its CLI.
type GridConfig struct {
	DatabaseURL string
	PageSize    int
	User        string
	LogLevel    string
	LogFormat   string
}

// DefaultGridConfig returns configuration with default values.
func DefaultGridConfig() *GridConfig {
	return &GridConfig{
		DatabaseURL: "sqlite://rulegrid.db",
		PageSize:    50,
		User:        "Current User",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}
