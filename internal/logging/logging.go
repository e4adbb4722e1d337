package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// Options configures New.
type Options struct {
	Level  string // trace, debug, info, warn, error; empty means warn
	Format string // console or json; empty means console
	Out    io.Writer
}

// New creates a structured logger. The CLI writes to stderr so report output
// on stdout stays clean.
func New(opts Options) (zerolog.Logger, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", opts.Level, err)
		}
		level = l
	}

	switch strings.ToLower(opts.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !isTerminal(out)}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", opts.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext retrieves the logger from the context, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
