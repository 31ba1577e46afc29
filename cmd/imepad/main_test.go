package main

import (
	"errors"
	"testing"

	"github.com/dshills/imepad/internal/config"
)

func TestOptionsOverlay(t *testing.T) {
	opts := &options{
		hint:     "flag hint",
		plain:    true,
		logLevel: "debug",
		set:      map[string]bool{"hint": true, "plain": true},
	}

	cfg := config.Default()
	cfg.Logging.Level = "warn"
	opts.overlay(cfg)

	if cfg.Textarea.Hint != "flag hint" {
		t.Errorf("Hint = %q, want flag value", cfg.Textarea.Hint)
	}
	if !cfg.Console.Plain {
		t.Error("Plain should be set from the flag")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("unset flags must not override config, got level %q", cfg.Logging.Level)
	}
}

func TestNewLogger_Discard(t *testing.T) {
	logger, closeLog, err := newLogger(config.Default())
	if err != nil {
		t.Fatalf("newLogger error: %v", err)
	}
	defer closeLog()

	logger.Info("goes nowhere")
}

func TestLoadConfig_LogLevelFlag(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"warning", false},
		{"WARN", false},
		{"debug", false},
		{"loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			opts := &options{logLevel: tt.level, set: map[string]bool{"log-level": true}}
			cfg, err := loadConfig(opts)

			if tt.wantErr {
				var verr *config.ValidationError
				if !errors.As(err, &verr) || verr.Path != "logging.level" {
					t.Fatalf("loadConfig() error = %v, want logging.level validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if cfg.Logging.Level != tt.level {
				t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, tt.level)
			}
		})
	}
}
