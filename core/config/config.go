package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tristendillon/scriptexport/core/logger"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = "scriptexport.yaml"
	EnvPrefix = "SCRIPTEXPORT"
)

var (
	ErrInvalidExtension = errors.New("extension must start with a dot")
	ErrInvalidDebounce  = errors.New("watch debounce must not be negative")
	ErrConfigExists     = errors.New("config file already exists")
)

type Config struct {
	Extension string `mapstructure:"extension"`
	Verbose   bool   `mapstructure:"verbose"`
	Color     bool   `mapstructure:"color"`
	Watch     Watch  `mapstructure:"watch"`
}

type Watch struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Exclude  []string      `mapstructure:"exclude"`
}

func Default() *Config {
	return &Config{
		Extension: ".py",
		Verbose:   false,
		Color:     true,
		Watch: Watch{
			Debounce: 500 * time.Millisecond,
			Exclude:  []string{".git", "__pycache__", ".venv", "venv", "node_modules"},
		},
	}
}

// Load reads configuration from configPath, or from scriptexport.yaml in the
// working directory when configPath is empty, with SCRIPTEXPORT_* environment
// variables taking precedence. A missing default file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("No config file found, using defaults")
	} else {
		logger.Debug("Config file found: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("Config: %+v", cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("extension", def.Extension)
	v.SetDefault("verbose", def.Verbose)
	v.SetDefault("color", def.Color)
	v.SetDefault("watch.debounce", def.Watch.Debounce.String())
	v.SetDefault("watch.exclude", def.Watch.Exclude)
}

func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.Extension, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, cfg.Extension)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, cfg.Watch.Debounce)
	}
	return nil
}

type fileWatch struct {
	Debounce string   `yaml:"debounce"`
	Exclude  []string `yaml:"exclude"`
}

type fileConfig struct {
	Extension string    `yaml:"extension"`
	Verbose   bool      `yaml:"verbose"`
	Color     bool      `yaml:"color"`
	Watch     fileWatch `yaml:"watch"`
}

// WriteDefault writes the default configuration as YAML to path. An existing
// file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	def := Default()
	data, err := yaml.Marshal(fileConfig{
		Extension: def.Extension,
		Verbose:   def.Verbose,
		Color:     def.Color,
		Watch: fileWatch{
			Debounce: def.Watch.Debounce.String(),
			Exclude:  def.Watch.Exclude,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	logger.Debug("Wrote default config to %s", path)
	return nil
}
