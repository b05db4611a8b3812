package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection: json (default), sqlite or memory
	Backend string

	// JSON file backend
	DataFile string

	// SQLite backend
	SQLiteDBPath string

	// CSV export destination
	ExportDir string
}

func Load() *Config {
	base := defaultDataDir()
	cfg := &Config{
		Port:         getEnv("PORT", "8087"),
		Backend:      getEnv("DATA_BACKEND", "json"),
		DataFile:     getEnv("DATA_FILE", filepath.Join(base, "budget_data.json")),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", filepath.Join(base, "budsjetto.db")),
		ExportDir:    getEnv("EXPORT_DIR", filepath.Join(base, "exports")),
	}
	return cfg
}

// defaultDataDir is ~/.budsjetto, falling back to the working directory when
// the home directory cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".budsjetto"
	}
	return filepath.Join(home, ".budsjetto")
}

// Validate checks the configuration and returns all problems as one error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Backend {
	case "json", "sqlite", "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [json sqlite memory]", c.Backend))
	}

	if c.Backend == "json" && c.DataFile == "" {
		errs = append(errs, "data file path cannot be empty when using json backend")
	}
	if c.Backend == "sqlite" && c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
	}
	if c.ExportDir == "" {
		errs = append(errs, "export directory cannot be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
