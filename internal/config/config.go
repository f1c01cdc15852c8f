package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	SDK       SDKConfig       `mapstructure:"sdk"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Log       LogConfig       `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SDKConfig selects and configures the SDK facade.
type SDKConfig struct {
	// Mode is "simulator" (fully offline) or "remote" (status queries over HTTP,
	// recording still simulated).
	Mode      string        `mapstructure:"mode"`
	BaseURL   string        `mapstructure:"base_url"`
	Version   string        `mapstructure:"version"`
	Device    string        `mapstructure:"device"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
}

// SimulatorConfig drives the offline SDK stand-in.
type SimulatorConfig struct {
	Latency           time.Duration `mapstructure:"latency"`
	Offline           bool          `mapstructure:"offline"`
	Failure           string        `mapstructure:"failure"` // reason code, e.g. "alignment.tooFarAway"
	Impairment        bool          `mapstructure:"impairment"`
	SupportedDevices  []string      `mapstructure:"supported_devices"`
	SupportedVersions []string      `mapstructure:"supported_versions"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

const (
	ModeSimulator = "simulator"
	ModeRemote    = "remote"

	// SDKVersion is the SDK version this build integrates.
	SDKVersion = "2.4.0"
)

// DefaultPath is the config file used when neither a flag nor
// QUICKSTART_CONFIG names one.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "quickstart", "config.toml")
}

func defaults(v *viper.Viper) {
	share := filepath.Join(homeDir(), ".local", "share", "quickstart")
	v.SetDefault("database.path", filepath.Join(share, "quickstart.db"))
	v.SetDefault("sdk.mode", ModeSimulator)
	v.SetDefault("sdk.base_url", "")
	v.SetDefault("sdk.version", SDKVersion)
	v.SetDefault("sdk.device", "Simulator")
	v.SetDefault("sdk.api_key_env", "QUICKSTART_API_KEY")
	v.SetDefault("sdk.api_key", "")
	v.SetDefault("sdk.timeout", 10*time.Second)
	v.SetDefault("sdk.retries", 2)
	v.SetDefault("simulator.latency", 800*time.Millisecond)
	v.SetDefault("simulator.offline", false)
	v.SetDefault("simulator.failure", "")
	v.SetDefault("simulator.impairment", false)
	v.SetDefault("simulator.supported_devices", []string{})
	v.SetDefault("simulator.supported_versions", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(share, "quickstart.log"))
}

// Load reads configuration from path (or QUICKSTART_CONFIG, or the default
// location) and the environment. Env var overrides use prefix QUICKSTART_.
// A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("QUICKSTART_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("QUICKSTART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	switch c.SDK.Mode {
	case ModeSimulator:
	case ModeRemote:
		if strings.TrimSpace(c.SDK.BaseURL) == "" {
			return fmt.Errorf("config: sdk.base_url is required in %q mode", ModeRemote)
		}
	default:
		return fmt.Errorf("config: unknown sdk.mode %q", c.SDK.Mode)
	}
	if c.SDK.Retries < 0 {
		return fmt.Errorf("config: sdk.retries must not be negative")
	}
	return nil
}

// Save writes cfg to path (or the default location), creating the directory
// if needed. The API key is written in plain text; prefer the env var or the
// secrets store.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("sdk.mode", cfg.SDK.Mode)
	v.Set("sdk.base_url", cfg.SDK.BaseURL)
	v.Set("sdk.version", cfg.SDK.Version)
	v.Set("sdk.device", cfg.SDK.Device)
	v.Set("sdk.api_key_env", cfg.SDK.APIKeyEnv)
	v.Set("sdk.api_key", cfg.SDK.APIKey)
	v.Set("sdk.timeout", cfg.SDK.Timeout.String())
	v.Set("sdk.retries", cfg.SDK.Retries)
	v.Set("simulator.latency", cfg.Simulator.Latency.String())
	v.Set("simulator.offline", cfg.Simulator.Offline)
	v.Set("simulator.failure", cfg.Simulator.Failure)
	v.Set("simulator.impairment", cfg.Simulator.Impairment)
	v.Set("simulator.supported_devices", cfg.Simulator.SupportedDevices)
	v.Set("simulator.supported_versions", cfg.Simulator.SupportedVersions)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}
