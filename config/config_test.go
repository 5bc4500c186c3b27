package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
	assert.Equal(t, "public/index.html", cfg.IndexPath())
	assert.False(t, cfg.MetricsEnabled)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":             "8081",
		"HOST":             "127.0.0.1",
		"PUBLIC_DIR":       "dist",
		"INDEX_FILE":       "app.html",
		"APP_VERSION":      "2.3.4",
		"LOG_LEVEL":        "DEBUG",
		"LOG_FORMAT":       "json",
		"GIN_MODE":         "debug",
		"TRUSTED_PROXIES":  "10.0.0.0/8, ,127.0.0.1",
		"METRICS_ENABLED":  "true",
		"BODY_LIMIT_BYTES": "2048",
		"SHUTDOWN_TIMEOUT": "3s",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
	assert.Equal(t, "dist/app.html", cfg.IndexPath())
	assert.Equal(t, "2.3.4", cfg.AppVersion)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, int64(2048), cfg.BodyLimitBytes)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromLookupBlankValuesKeepDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"PORT": "  ", "PUBLIC_DIR": ""}))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultPublicDir, cfg.PublicDir)
}

func TestFromLookupRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non numeric port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"unknown log level", "LOG_LEVEL", "trace"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"unknown gin mode", "GIN_MODE", "prod"},
		{"bad metrics flag", "METRICS_ENABLED", "maybe"},
		{"zero body limit", "BODY_LIMIT_BYTES", "0"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{tt.key: tt.val}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "4321")
	t.Setenv("APP_VERSION", "9.9.9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Port)
	assert.Equal(t, "9.9.9", cfg.AppVersion)
}
