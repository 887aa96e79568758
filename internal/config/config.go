// Package config loads linecompare settings from YAML with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/kateleext/linecompare/internal/compare"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory and then the home directory
const FileName = ".linecompare.yaml"

// Config is the main configuration for linecompare.
type Config struct {
	Policy   string       `yaml:"policy" env:"LINECOMPARE_POLICY"`
	Theme    string       `yaml:"theme" env:"LINECOMPARE_THEME"`
	LogLevel string       `yaml:"log_level" env:"LINECOMPARE_LOG_LEVEL"`
	Watch    WatchConfig  `yaml:"watch"`
	Editor   EditorConfig `yaml:"editor"`
	Render   RenderConfig `yaml:"render"`
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled" env:"LINECOMPARE_WATCH"`
	DebounceMS int  `yaml:"debounce_ms" env:"LINECOMPARE_WATCH_DEBOUNCE_MS"`
}

// EditorConfig holds text box settings.
type EditorConfig struct {
	Height int `yaml:"height"` // rows per text box
}

// RenderConfig holds result display settings.
type RenderConfig struct {
	Width     int  `yaml:"width"` // wrap column; 0 wraps at the terminal width in the TUI and not at all when printing
	Highlight bool `yaml:"highlight" env:"LINECOMPARE_HIGHLIGHT"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Policy:   compare.BaseVsRest.String(),
		Theme:    "dracula",
		LogLevel: "info",
		Watch: WatchConfig{
			Enabled:    false,
			DebounceMS: 100,
		},
		Editor: EditorConfig{
			Height: 8,
		},
		Render: RenderConfig{
			Highlight: true,
		},
	}
}

// PairingPolicy parses the configured policy
func (c Config) PairingPolicy() (compare.Policy, error) {
	return compare.ParsePolicy(c.Policy)
}

// Debounce returns the watch debounce as a duration
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// Level parses the configured log level, defaulting to info
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Validate checks values that would otherwise fail later
func (c Config) Validate() error {
	if _, err := c.PairingPolicy(); err != nil {
		return err
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}
	if c.Editor.Height < 0 {
		return fmt.Errorf("editor.height must not be negative, got %d", c.Editor.Height)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render.width must not be negative, got %d", c.Render.Width)
	}
	return nil
}

// Load reads the YAML file at path on top of the defaults. An empty path searches the working
// directory and then the home directory for FileName, keeping the defaults if neither exists.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = find()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func find() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	global := filepath.Join(home, FileName)
	if _, err := os.Stat(global); err == nil {
		return global
	}
	return ""
}

func loadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	// Expand environment variables in the YAML
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("parse config file %s: %s", path, strings.Join(typeErr.Errors, "; "))
		}
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides sets struct fields from environment variables named by the `env` tag.
func applyEnvOverrides(v any) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := val.Field(i)

		if fieldVal.Kind() == reflect.Struct {
			if fieldVal.CanAddr() {
				applyEnvOverrides(fieldVal.Addr().Interface())
			}
			continue
		}

		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}
		envVal, ok := os.LookupEnv(envTag)
		if !ok || !fieldVal.CanSet() {
			continue
		}

		switch fieldVal.Kind() {
		case reflect.String:
			fieldVal.SetString(envVal)
		case reflect.Int, reflect.Int64:
			var n int64
			if _, err := fmt.Sscanf(envVal, "%d", &n); err == nil {
				fieldVal.SetInt(n)
			}
		case reflect.Bool:
			fieldVal.SetBool(strings.EqualFold(envVal, "true") || envVal == "1")
		}
	}
}
