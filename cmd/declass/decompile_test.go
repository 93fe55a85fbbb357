package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/declass/declass/pkg/declass/config"
)

func TestBuildLoggingConfig_Defaults(t *testing.T) {
	cfg := buildLoggingConfig(&config.Config{}, false)

	assert.Equal(t, "info", cfg.Level)
	assert.Empty(t, cfg.ConsoleLevel)
	assert.NotEmpty(t, cfg.Path)
}

func TestBuildLoggingConfig_UsesConfiguredConsoleLevel(t *testing.T) {
	fileCfg := &config.Config{
		Logging: config.LoggingConfig{
			Level:        "warn",
			ConsoleLevel: "error",
			Components:   map[string]string{"pipeline": "debug"},
		},
	}

	cfg := buildLoggingConfig(fileCfg, false)

	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "error", cfg.ConsoleLevel)
	assert.Equal(t, "debug", cfg.Components["pipeline"])
}

func TestBuildLoggingConfig_VerboseOverrides(t *testing.T) {
	fileCfg := &config.Config{
		Logging: config.LoggingConfig{Level: "error"},
	}

	cfg := buildLoggingConfig(fileCfg, true)

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "debug", cfg.ConsoleLevel)
}
