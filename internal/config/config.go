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
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Setting keys. They double as flag names.
const (
	KeyConfig          = "config"
	KeyKeymap          = "keymap"
	KeyDefaultKeymap   = "default-keymap"
	KeyLogLevel        = "log-level"
	KeyWatch           = "watch"
	KeyDebounce        = "debounce"
	KeySequenceTimeout = "sequence-timeout"
)

// EnvPrefix prefixes environment overrides, e.g. KEYBIND_LOG_LEVEL.
const EnvPrefix = "KEYBIND"

// FileName is the config file name without extension.
const FileName = "keybind"

// Config holds the keybind settings.
type Config struct {
	// Keymap is the user keymap file. Empty loads only the built-in keymap.
	Keymap string `mapstructure:"keymap" yaml:"keymap"`

	// DefaultKeymap layers the built-in keymap under the user keymap.
	DefaultKeymap bool `mapstructure:"default-keymap" yaml:"default-keymap"`

	LogLevel string `mapstructure:"log-level" yaml:"log-level"`

	// Watch reloads the keymap when the file changes.
	Watch bool `mapstructure:"watch" yaml:"watch"`

	// Debounce is the quiet period before a change triggers a reload.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`

	// SequenceTimeout bounds the pause between strokes of a sequence.
	SequenceTimeout time.Duration `mapstructure:"sequence-timeout" yaml:"sequence-timeout"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DefaultKeymap:   true,
		LogLevel:        "info",
		Debounce:        100 * time.Millisecond,
		SequenceTimeout: time.Second,
	}
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyConfig, "", "config file (default ./keybind.yaml or user config dir)")
	fs.StringP(KeyKeymap, "k", d.Keymap, "keymap file to load")
	fs.Bool(KeyDefaultKeymap, d.DefaultKeymap, "load the built-in keymap under the user keymap")
	fs.String(KeyLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolP(KeyWatch, "w", d.Watch, "reload the keymap when it changes")
	fs.Duration(KeyDebounce, d.Debounce, "quiet period before reloading a changed keymap")
	fs.Duration(KeySequenceTimeout, d.SequenceTimeout, "maximum pause between strokes of a sequence")
}

// Load reads the configuration. fs may be nil; flags that were set on it
// take precedence over every other source.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setupViper(v)

	if fs != nil {
		if f := fs.Lookup(KeyConfig); f != nil && f.Changed {
			path := ExpandPath(f.Value.String())
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			v.SetConfigFile(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("unable to bind flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.Keymap = ExpandPath(cfg.Keymap)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupViper(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyKeymap, d.Keymap)
	v.SetDefault(KeyDefaultKeymap, d.DefaultKeymap)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyWatch, d.Watch)
	v.SetDefault(KeyDebounce, d.Debounce)
	v.SetDefault(KeySequenceTimeout, d.SequenceTimeout)

	v.SetConfigName(FileName)
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, FileName))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Validate checks every setting and returns all problems combined.
func (c *Config) Validate() error {
	var errs error
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = multierr.Append(errs, &SettingError{Key: KeyLogLevel, Value: c.LogLevel, Message: "unknown level"})
	}
	if c.Debounce < 0 {
		errs = multierr.Append(errs, &SettingError{Key: KeyDebounce, Value: c.Debounce, Message: "must not be negative"})
	}
	if c.SequenceTimeout <= 0 {
		errs = multierr.Append(errs, &SettingError{Key: KeySequenceTimeout, Value: c.SequenceTimeout, Message: "must be positive"})
	}
	if c.Watch && c.Keymap == "" {
		errs = multierr.Append(errs, &SettingError{Key: KeyWatch, Value: c.Watch, Message: "requires a keymap file"})
	}
	return errs
}

// YAML renders the settings in config file form.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
