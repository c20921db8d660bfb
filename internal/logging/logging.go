// Package logging configures the zerolog loggers used by the command-line
// tools.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// EnvLogLevel names the environment variable that overrides the log
	// level, e.g. DERIVEGEN_LOG_LEVEL=debug.
	EnvLogLevel = "DERIVEGEN_LOG_LEVEL"
	// EnvLogNoColor names the environment variable that disables colored
	// output when set to a true value.
	EnvLogNoColor = "DERIVEGEN_LOG_NOCOLOR"
)

// Options controls the logger built by New.
type Options struct {
	// Level is a level name accepted by ParseLevel. Unrecognized names mean
	// info.
	Level   string
	NoColor bool
}

// New returns a console logger writing to w for the named app. Options are
// overridden by the DERIVEGEN_LOG_LEVEL and DERIVEGEN_LOG_NOCOLOR environment
// variables when they are set to valid values.
func New(w io.Writer, app string, opts Options) zerolog.Logger {
	applyEnvOverrides(&opts)
	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

func applyEnvOverrides(opts *Options) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if _, ok := ParseLevel(raw); ok {
			opts.Level = raw
		}
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		opts.NoColor = v
	}
}

// ParseLevel maps a level name to a zerolog level. It returns false for blank
// or unrecognized names.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
