package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config holds defaults read from the environment. Command-line flags
// override them. Pattern lists are newline separated because patterns
// such as "x{1,3}" contain commas.
type config struct {
	Replacement string   `env:"XSSURL_REPLACEMENT"`
	Include     []string `env:"XSSURL_INCLUDE" envSeparator:"\n"`
	Exclude     []string `env:"XSSURL_EXCLUDE" envSeparator:"\n"`
	LogLevel    string   `env:"XSSURL_LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"XSSURL_LOG_FORMAT" envDefault:"text"`
}

func loadConfig() (config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be \"text\" or \"json\"", format)
	}
}
