// Package config loads clipbridge settings from defaults, a YAML config
// file, a .env file, CLIPBRIDGE_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"clipbridge/internal/logger"
)

// EnvPrefix prefixes every environment variable read by clipbridge.
const EnvPrefix = "CLIPBRIDGE"

// Keys understood by Load.
const (
	KeyJoiner    = "joiner"
	KeyOutput    = "output"
	KeyLogLevel  = "log-level"
	KeyLogFile   = "log-file"
	KeyTestMode  = "test-mode"
	KeyMemory    = "memory"
	KeyStripANSI = "strip-ansi"
)

// Config is the resolved configuration.
type Config struct {
	Joiner    string `mapstructure:"joiner" yaml:"joiner" json:"joiner"`
	Output    string `mapstructure:"output" yaml:"output" json:"output"`
	LogLevel  string `mapstructure:"log-level" yaml:"log-level" json:"log_level"`
	LogFile   string `mapstructure:"log-file" yaml:"log-file" json:"log_file"`
	TestMode  bool   `mapstructure:"test-mode" yaml:"test-mode" json:"test_mode"`
	Memory    bool   `mapstructure:"memory" yaml:"memory" json:"memory"`
	StripANSI bool   `mapstructure:"strip-ansi" yaml:"strip-ansi" json:"strip_ansi"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-" yaml:"-" json:"file,omitempty"`
}

// Loader wraps a viper instance with clipbridge defaults and env binding.
type Loader struct {
	v *viper.Viper

	// ConfigFile overrides the default config file location. When set the
	// file must exist.
	ConfigFile string

	// DotEnvDir is searched for a .env file. Empty means the working directory.
	DotEnvDir string
}

// NewLoader creates a Loader with defaults registered.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault(KeyJoiner, "\n")
	v.SetDefault(KeyOutput, "auto")
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyMemory, false)
	v.SetDefault(KeyStripANSI, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	return &Loader{v: v}
}

// BindFlags binds every flag in fs whose name is a config key. Flags only
// take precedence when they were set on the command line.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || !isKey(f.Name) {
			return
		}
		if err := l.v.BindPFlag(f.Name, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Load reads the config file and .env, then resolves all keys.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDotEnv(); err != nil {
		return nil, err
	}

	file, err := l.configFile()
	if err != nil {
		return nil, err
	}
	if file != "" {
		l.v.SetConfigFile(file)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		logger.Debug("Loaded config file", "path", file)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Joiner = Unescape(cfg.Joiner)
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.File = file
	return &cfg, nil
}

// Viper exposes the underlying instance.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

func (l *Loader) configFile() (string, error) {
	if l.ConfigFile != "" {
		if _, err := os.Stat(l.ConfigFile); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return l.ConfigFile, nil
	}

	path, err := DefaultConfigPath()
	if err != nil {
		// No resolvable config dir is not fatal
		logger.Debug("No user config directory", "error", err)
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// loadDotEnv loads .env into the process environment without overriding
// variables that are already set.
func (l *Loader) loadDotEnv() error {
	dir := l.DotEnvDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil
		}
		dir = wd
	}

	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debug("Loaded .env file", "path", path)
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/clipbridge/config.yaml, or the
// platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clipbridge", "config.yaml"), nil
}

// Unescape interprets Go escape sequences such as \n and \t in s. Strings
// that do not unquote cleanly are returned unchanged.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return s
	}
	return u
}

func isKey(name string) bool {
	switch name {
	case KeyJoiner, KeyOutput, KeyLogLevel, KeyLogFile, KeyTestMode, KeyMemory, KeyStripANSI:
		return true
	}
	return false
}
