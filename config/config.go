package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultPort            = 3000
	DefaultHost            = "0.0.0.0"
	DefaultPublicDir       = "public"
	DefaultIndexFile       = "index.html"
	DefaultAppVersion      = "1.0.0"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultGinMode         = "release"
	DefaultBodyLimitBytes  = 100 << 10
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds everything the gateway reads from the environment.
type Config struct {
	Port            int
	Host            string
	PublicDir       string
	IndexFile       string
	AppVersion      string
	LogLevel        string
	LogFormat       string
	GinMode         string
	TrustedProxies  []string
	MetricsEnabled  bool
	BodyLimitBytes  int64
	ShutdownTimeout time.Duration
}

// Addr returns the host:port the listener binds to.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IndexPath returns the path of the single-page application entry point.
func (c Config) IndexPath() string {
	return filepath.Join(c.PublicDir, c.IndexFile)
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Port:            DefaultPort,
		Host:            DefaultHost,
		PublicDir:       DefaultPublicDir,
		IndexFile:       DefaultIndexFile,
		AppVersion:      DefaultAppVersion,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		GinMode:         DefaultGinMode,
		BodyLimitBytes:  DefaultBodyLimitBytes,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load reads an optional .env file from the working directory and then builds
// a Config from the process environment. Variables already present in the
// environment take precedence over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to resolve variables. It exists so
// tests can supply an environment without touching the process one.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q: must be an integer between 0 and 65535", v)
		}
		cfg.Port = port
	}
	if v, ok := get("HOST"); ok {
		cfg.Host = v
	}
	if v, ok := get("PUBLIC_DIR"); ok {
		cfg.PublicDir = v
	}
	if v, ok := get("INDEX_FILE"); ok {
		cfg.IndexFile = v
	}
	if v, ok := get("APP_VERSION"); ok {
		cfg.AppVersion = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "warning", "error":
			cfg.LogLevel = strings.ToLower(v)
		default:
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: expected debug, info, warn or error", v)
		}
	}
	if v, ok := get("LOG_FORMAT"); ok {
		switch strings.ToLower(v) {
		case "text", "json":
			cfg.LogFormat = strings.ToLower(v)
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT %q: expected text or json", v)
		}
	}
	if v, ok := get("GIN_MODE"); ok {
		switch v {
		case "debug", "release", "test":
			cfg.GinMode = v
		default:
			return Config{}, fmt.Errorf("invalid GIN_MODE %q: expected debug, release or test", v)
		}
	}
	if v, ok := get("TRUSTED_PROXIES"); ok {
		cfg.TrustedProxies = splitList(v)
	}
	if v, ok := get("METRICS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		cfg.MetricsEnabled = enabled
	}
	if v, ok := get("BODY_LIMIT_BYTES"); ok {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit <= 0 {
			return Config{}, fmt.Errorf("invalid BODY_LIMIT_BYTES %q: must be a positive integer", v)
		}
		cfg.BodyLimitBytes = limit
	}
	if v, ok := get("SHUTDOWN_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout < 0 {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: must be a non-negative duration", v)
		}
		cfg.ShutdownTimeout = timeout
	}

	return cfg, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
