// Package logging builds the loggers the command line tools write to.
package logging

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects where log lines go and how they look.
// The zero value logs text at INFO to stderr.
type Config struct {
	Writer io.Writer
	Level  string
	Format string
	Source bool
}

func New(cfg Config) (*slog.Logger, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, xerrors.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Source,
	}

	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, xerrors.Errorf("unknown log format %q", cfg.Format)
}
