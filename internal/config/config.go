package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/imepad/internal/config/loader"
	"github.com/dshills/imepad/internal/renderer/core"
)

// Config holds all imepad settings.
type Config struct {
	Textarea TextareaConfig
	Console  ConsoleConfig
	Logging  LoggingConfig
}

// TextareaConfig controls placeholder texts and styling of the textarea.
type TextareaConfig struct {
	// Hint is shown while the buffer is empty and the window is focused.
	Hint string

	// UnfocusedHint is shown while the buffer is empty and unfocused.
	UnfocusedHint string

	// Caret is the single glyph drawn at the insertion point.
	Caret string

	// PreeditColor is an optional hex foreground for the composition text.
	PreeditColor string
}

// ConsoleConfig controls terminal output.
type ConsoleConfig struct {
	// Echo prints every host event above the live line.
	Echo bool

	// Plain disables escape sequences.
	Plain bool
}

// LoggingConfig controls the diagnostic log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File receives log output; empty discards it.
	File string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Textarea: TextareaConfig{
			Hint:          "Type something...",
			UnfocusedHint: "Focus the window",
			Caret:         "│",
		},
		Console: ConsoleConfig{
			Echo: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load resolves defaults, the TOML file at path (if non-empty and present),
// and the environment, then validates the result.
func Load(path string) (*Config, error) {
	return LoadWith(loader.OSFS{}, path, loader.NewEnvLoader(loader.EnvPrefix))
}

// LoadWith is Load with an explicit file system and environment loader.
// A nil env skips the environment layer.
func LoadWith(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	merged := make(map[string]any)

	if path != "" {
		fileConfig, err := loader.NewTOMLLoader(fsys, path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileConfig)
	}

	if env != nil {
		envConfig, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envConfig)
	}

	cfg := Default()
	if err := cfg.Apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overlays a raw configuration map onto c. Unknown keys are ignored.
// String values, as the environment supplies them, are converted by the
// type of the setting they target.
func (c *Config) Apply(m map[string]any) error {
	var errs []error
	str := func(dst *string, section, key string) {
		v, ok := lookup(m, section, key)
		if !ok {
			return
		}
		if s, isString := v.(string); isString {
			*dst = s
			return
		}
		*dst = fmt.Sprint(v)
	}
	boolean := func(dst *bool, section, key string) {
		v, ok := lookup(m, section, key)
		if !ok {
			return
		}
		switch v := v.(type) {
		case bool:
			*dst = v
		case string:
			b, err := parseBool(v)
			if err != nil {
				errs = append(errs, &ValidationError{Path: section + "." + key, Message: "expected a boolean", Value: v})
				return
			}
			*dst = b
		default:
			errs = append(errs, &ValidationError{Path: section + "." + key, Message: "expected a boolean", Value: v})
		}
	}

	str(&c.Textarea.Hint, "textarea", "hint")
	str(&c.Textarea.UnfocusedHint, "textarea", "unfocusedHint")
	str(&c.Textarea.Caret, "textarea", "caret")
	str(&c.Textarea.PreeditColor, "textarea", "preeditColor")
	boolean(&c.Console.Echo, "console", "echo")
	boolean(&c.Console.Plain, "console", "plain")
	str(&c.Logging.Level, "logging", "level")
	str(&c.Logging.File, "logging", "file")

	return errors.Join(errs...)
}

// parseBool accepts strconv.ParseBool forms plus yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

func lookup(m map[string]any, section, key string) (any, bool) {
	sec, ok := m[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := sec[key]
	return v, ok
}

// Validate checks that all settings hold usable values.
func (c *Config) Validate() error {
	var errs []error

	if utf8.RuneCountInString(c.Textarea.Caret) != 1 {
		errs = append(errs, &ValidationError{
			Path:    "textarea.caret",
			Message: "must be exactly one character",
			Value:   c.Textarea.Caret,
		})
	}

	if _, err := c.PreeditForeground(); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "textarea.preeditColor",
			Message: err.Error(),
			Value:   c.Textarea.PreeditColor,
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be debug, info, warn, or error",
			Value:   c.Logging.Level,
		})
	}

	return errors.Join(errs...)
}

// CaretRune returns the caret glyph.
func (c *Config) CaretRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Textarea.Caret)
	return r
}

// PreeditForeground parses PreeditColor. An empty value yields the
// default color.
func (c *Config) PreeditForeground() (core.Color, error) {
	if c.Textarea.PreeditColor == "" {
		return core.ColorDefault, nil
	}
	return core.ColorFromHex(c.Textarea.PreeditColor)
}
