package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"ERROR", LevelError, false},
		{"bogus", LevelInfo, true},
		{"", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "error", LevelError.String())
}

func TestGet_BeforeInitIsSilent(t *testing.T) {
	logger := Get("silent-component")
	require.NotNil(t, logger)

	// Must not panic even though nothing is initialized.
	logger.Info("discarded")
}

func TestGet_ReturnsSameLogger(t *testing.T) {
	a := Get("cached-component")
	b := Get("cached-component")
	assert.Same(t, a, b)
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "declass.log")

	require.NoError(t, Init(Config{Level: "debug", Path: path}))
	defer Close()

	logger := Get("init-test")
	logger.Info("archive processed", "archive", "app.jar")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "archive processed")
	assert.Contains(t, string(data), "init-test")
}

func TestInit_ComponentLevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "declass.log")

	require.NoError(t, Init(Config{
		Level:      "error",
		Path:       path,
		Components: map[string]string{"chatty": "debug"},
	}))
	defer Close()

	Get("chatty").Debug("override applies")
	Get("quiet").Debug("suppressed by default level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "override applies")
	assert.False(t, strings.Contains(string(data), "suppressed by default level"))
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(Config{Level: "bogus", Path: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}

func TestClose_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "declass.log")
	require.NoError(t, Init(Config{Level: "info", Path: path}))

	require.NoError(t, Close())
	require.NoError(t, Close())
}
