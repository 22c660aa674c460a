package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName names the data and config directories
const AppName = "byteme"

// Config holds all configuration values.
type Config struct {
	DataDir       string        `mapstructure:"data_dir"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFile       string        `mapstructure:"log_file"`
	EventDuration time.Duration `mapstructure:"event_duration"`

	// Set by --version; not read from files or the environment
	ShowVersion bool `mapstructure:"-"`
	// Positional arguments left after flag parsing
	Args []string `mapstructure:"-"`
}

// Load reads configuration from flags, BYTEME_* environment variables,
// an optional config.yaml and defaults, in that order of priority.
func Load(args []string) (Config, error) {
	v := viper.New()

	flags := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	flags.String("data-dir", "", "directory holding the task database and log")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "log file path (default <data-dir>/byteme.log)")
	flags.Duration("event-duration", 0, "length given to events added without /to")
	showVersion := flags.BoolP("version", "v", false, "print version information and exit")
	// Stop at the first command word so "byteme event x /at ..." is not parsed as flags
	flags.SetInterspersed(false)

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	for key, flag := range map[string]string{
		"data_dir":       "data-dir",
		"log_level":      "log-level",
		"log_file":       "log-file",
		"event_duration": "event-duration",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.AutomaticEnv()

	dataDir, err := defaultDataDir()
	if err != nil {
		return Config{}, err
	}
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("event_duration", time.Hour)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(dataDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, AppName+".log")
	}
	cfg.ShowVersion = *showVersion
	cfg.Args = flags.Args()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory is required")
	}
	if c.EventDuration <= 0 {
		return errors.New("event duration must be > 0")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// defaultDataDir returns the XDG data directory for the app
func defaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, AppName), nil
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}
