package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const appName = "moodlog"

type Config struct {
	// Database (driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Directory the TUI writes exports into
	ExportDir string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists.
func Load() *Config {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	return &Config{
		DBDriver:     envString("MOODLOG_DB_DRIVER", "sqlite"),
		DBConnection: envString("MOODLOG_DB", defaultPath("moodlog.db")),
		LogFile:      envString("MOODLOG_LOG_FILE", defaultPath("moodlog.log")),
		LogLevel:     envLevel("MOODLOG_LOG_LEVEL", slog.LevelInfo),
		ExportDir:    envString("MOODLOG_EXPORT_DIR", homeDir()),
	}
}

// Dir returns ~/.config/moodlog (or the platform equivalent).
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appName), nil
}

func defaultPath(name string) string {
	dir, err := Dir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envLevel(key string, def slog.Level) slog.Level {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		slog.Warn("config invalid log level, using default", "key", key, "value", v, "default", def)
		return def
	}
	return level
}
