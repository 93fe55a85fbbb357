package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level        string            `mapstructure:"level"`
	Path         string            `mapstructure:"path"`
	ConsoleLevel string            `mapstructure:"console_level"`
	Components   map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	OutputDir     string   `mapstructure:"output_dir"`
	SkipResources bool     `mapstructure:"skip_resources"`
	InnerArchives bool     `mapstructure:"inner_archives"`
	Parallel      bool     `mapstructure:"parallel"`
	Workers       int      `mapstructure:"workers"`
	MaxDepth      int      `mapstructure:"max_depth"`
	Include       []string `mapstructure:"include"`
	Exclude       []string `mapstructure:"exclude"`
	Decompiler    []string `mapstructure:"decompiler"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/declass/config.yaml
//   - $HOME/.config/declass/config.yaml
//
// Environment variables are prefixed with DECLASS_ (e.g., DECLASS_WORKERS).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "declass"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "declass"))

	v.SetEnvPrefix("DECLASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults registers all default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "")
	v.SetDefault("skip_resources", false)
	v.SetDefault("inner_archives", DefaultInnerArchives)
	v.SetDefault("parallel", false)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("max_depth", DefaultMaxDepth)
	v.SetDefault("decompiler", DefaultDecompiler)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use DefaultLogPath
	v.SetDefault("logging.console_level", "")
	v.SetDefault("logging.components", map[string]string{
		"pipeline": "info",
		"dispatch": "info",
		"sink":     "warn",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "declass"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "declass"), nil
}

// StateDir returns $XDG_STATE_HOME/declass/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "declass")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "declass.log")
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}
