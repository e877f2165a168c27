package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "CHASTA"
	dirName   = ".chasta"
)

// Global configuration structure.
type Global struct {
	// Delimiter used when none can be guessed: a single character or one of
	// tab, pipe, space.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// Columns selected when --columns is not given.
	Columns     string `mapstructure:"columns" yaml:"columns"`
	Precision   int    `mapstructure:"precision" yaml:"precision"`
	SampleBytes int    `mapstructure:"sample_bytes" yaml:"sample_bytes"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`

	// Batch
	BatchJobs int `mapstructure:"batch_jobs" yaml:"batch_jobs"`

	// Charts land next to the input unless ChartDir is set.
	ChartDir string `mapstructure:"chart_dir" yaml:"chart_dir"`
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		Delimiter:   ",",
		Columns:     "0",
		Precision:   6,
		SampleBytes: 1024,
		LogLevel:    "warn",
		BatchJobs:   4,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("columns", d.Columns)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("sample_bytes", d.SampleBytes)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("batch_jobs", d.BatchJobs)
	v.SetDefault("chart_dir", d.ChartDir)
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.chasta/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the analyze command cannot use.
func (c *Global) Validate() error {
	if c.Precision < 1 {
		return fmt.Errorf("precision must be > 0, got %d", c.Precision)
	}
	if c.SampleBytes <= 0 {
		return fmt.Errorf("sample_bytes must be > 0, got %d", c.SampleBytes)
	}
	if c.BatchJobs <= 0 {
		return fmt.Errorf("batch_jobs must be > 0, got %d", c.BatchJobs)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a level name to its slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level value %q: must be debug, info, warn, or error", s)
	}
}
