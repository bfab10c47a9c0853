// Package logging wires up structured CLI logging for cmd/vhdlfmt. It
// mirrors the Config/Flags/Handler shape of MacroPower-x's own log
// package (which builds a log/slog handler from --log-level/--log-format
// pflag flags): that package is the one logging-configuration pattern the
// retrieved corpus demonstrates end-to-end. The corpus's go.mod also
// names charm.land/log/v2, but no retrieved file imports or calls it, so
// there is nothing to ground a call site on; wiring an unseen API by
// guesswork would risk fabricating behavior, so this package is built on
// log/slog (stdlib) using the documented MacroPower-x pattern instead —
// see DESIGN.md for the dropped-dependency note.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"
)

// Format selects the slog handler's output encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

// Config holds the CLI-controlled logging settings.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a Config with the teacher's own defaults: info level,
// human-readable text output.
func NewConfig() *Config {
	return &Config{Level: "info", Format: string(FormatText)}
}

// RegisterFlags adds --log-level and --log-format to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, "log-level", c.Level, "log level: debug, info, warn, error")
	flags.StringVar(&c.Format, "log-format", c.Format, "log format: text, json, logfmt")
}

// NewHandler builds a slog.Handler writing to w per the configured level
// and format.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	switch Format(c.Format) {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	case FormatLogfmt, FormatText, "":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", c.Format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "error":
		return slog.LevelError, nil
	case "warn":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", level)
	}
}
