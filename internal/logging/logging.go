// Package logging builds the zerolog logger used across the app. The TUI owns
// the terminal, so logs go to a file unless an explicit writer is given.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config captures logger options.
type Config struct {
	Level   string    // "debug", "info", ...; defaults to info
	Path    string    // log file; ignored when Output is set
	Output  io.Writer // optional writer
	Service string    // attached to every entry
}

// New returns a logger and a close func for the underlying file, if any.
func New(cfg Config) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out, closer := cfg.Output, noop
	if out == nil {
		switch cfg.Path {
		case "":
			out = io.Discard
		default:
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return zerolog.Nop(), noop, fmt.Errorf("mkdir log dir: %w", err)
			}
			f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
			}
			out, closer = f, f.Close
		}
	}

	service := cfg.Service
	if service == "" {
		service = "quickstart"
	}
	zerolog.TimeFieldFormat = time.RFC3339

	l := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
	return l, closer, nil
}

// WithComponent returns a child logger annotated with the component name.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

func noop() error { return nil }
