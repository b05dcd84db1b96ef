package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	DatabasePath      string `mapstructure:"DATABASE_PATH"`
	BlacklistFile     string `mapstructure:"BLACKLIST_FILE"`
	UserAgent         string `mapstructure:"USERAGENT"`
	CrawlDelaySeconds int    `mapstructure:"CRAWL_DELAY_SECONDS"`
	HTTPTimeoutSecs   int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	MaxPages          int    `mapstructure:"MAX_PAGES"`
}

const (
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultCrawlDelay  = 1
	defaultHTTPTimeout = 30
	defaultMaxPages    = 50

	// DatabaseFileName is the canonical name probed by FindDatabasePath.
	DatabaseFileName = "repacks.db"
)

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	// Bind environment variables automatically.
	// Viper will check for an environment variable matching the key name (e.g., DATABASE_PATH)
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"database_path":        "DATABASE_PATH",
		"blacklist_file":       "BLACKLIST_FILE",
		"useragent":            "USERAGENT",
		"crawl_delay_seconds":  "CRAWL_DELAY_SECONDS",
		"http_timeout_seconds": "HTTP_TIMEOUT_SECONDS",
		"max_pages":            "MAX_PAGES",
	} {
		if vipErr := viper.BindEnv(key, env); vipErr != nil {
			slog.Warn("Unable to bind env var", "key", env, "error", vipErr)
		}
	}

	if vipErr := viper.Unmarshal(&config); vipErr != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vipErr)
	}

	processConfigDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// processConfigDefaults fills in defaults for values the user did not set.
func processConfigDefaults(cfg *Config) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.CrawlDelaySeconds <= 0 {
		cfg.CrawlDelaySeconds = defaultCrawlDelay
	}
	if cfg.HTTPTimeoutSecs <= 0 {
		cfg.HTTPTimeoutSecs = defaultHTTPTimeout
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = FindDatabasePath()
	}
	if cfg.BlacklistFile == "" {
		cfg.BlacklistFile = filepath.Join(filepath.Dir(cfg.DatabasePath), "blacklist.txt")
	}
}

// validateConfig rejects configurations the engine cannot start with.
// A missing database file is fine (it gets created), but its parent
// directory must exist or be creatable. A missing blacklist file is fine
// (empty blacklist); one that exists but cannot be read is not.
func validateConfig(cfg *Config) error {
	dir := filepath.Dir(cfg.DatabasePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Info("Database directory does not exist, creating it", "path", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create database directory %q: %w", dir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access database directory %q: %w", dir, err)
	}

	info, err := os.Stat(cfg.BlacklistFile)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("cannot access blacklist file %q: %w", cfg.BlacklistFile, err)
	case info.IsDir():
		return fmt.Errorf("blacklist path %q is a directory", cfg.BlacklistFile)
	}
	f, err := os.Open(cfg.BlacklistFile)
	if err != nil {
		return fmt.Errorf("cannot read blacklist file %q: %w", cfg.BlacklistFile, err)
	}
	return f.Close()
}

// FindDatabasePath probes a short ordered list of candidate locations for an
// existing database file. When none exists yet, the user data directory is
// returned so the first crawl creates the file there.
func FindDatabasePath() string {
	candidates := []string{
		DatabaseFileName, // current working directory
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), DatabaseFileName))
	}
	fallback := DatabaseFileName
	if home, err := os.UserHomeDir(); err == nil {
		fallback = filepath.Join(home, ".local", "share", "repack-catalog", DatabaseFileName)
		candidates = append(candidates, fallback)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return fallback
}
