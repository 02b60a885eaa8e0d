package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "PREPLINE_SEED",
		"BOXCOX_LOWER_LIMIT", "BOXCOX_UPPER_LIMIT", "BOXCOX_MIN_UNIQUE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, -5.0, cfg.BoxCoxLowerLimit)
	assert.Equal(t, 5.0, cfg.BoxCoxUpperLimit)
	assert.Equal(t, 5, cfg.BoxCoxMinUnique)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("PREPLINE_SEED", "42")
	t.Setenv("BOXCOX_LOWER_LIMIT", "-2.5")
	t.Setenv("BOXCOX_UPPER_LIMIT", "2.5")
	t.Setenv("BOXCOX_MIN_UNIQUE", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, -2.5, cfg.BoxCoxLowerLimit)
	assert.Equal(t, 2.5, cfg.BoxCoxUpperLimit)
	assert.Equal(t, 10, cfg.BoxCoxMinUnique)
}

func TestValidateRejectsBadValues(t *testing.T) {
	bad := &Config{LogFormat: "json", BoxCoxLowerLimit: 5, BoxCoxUpperLimit: -5, BoxCoxMinUnique: 5}
	assert.Error(t, bad.Validate())

	bad = &Config{LogFormat: "json", BoxCoxLowerLimit: -5, BoxCoxUpperLimit: 5, BoxCoxMinUnique: 0}
	assert.Error(t, bad.Validate())

	bad = &Config{LogFormat: "xml", BoxCoxLowerLimit: -5, BoxCoxUpperLimit: 5, BoxCoxMinUnique: 5}
	assert.Error(t, bad.Validate())
}

func TestBuildLogger(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "console",
		BoxCoxLowerLimit: -5, BoxCoxUpperLimit: 5, BoxCoxMinUnique: 5}

	logger, err := cfg.BuildLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)

	cfg.LogLevel = "nope"
	_, err = cfg.BuildLogger()
	assert.Error(t, err)
}
