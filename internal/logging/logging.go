// Package logging builds spectrum's loggers on charmbracelet/log.
//
// The CLI configures the process-wide default once with Setup and derives
// component loggers from it with New. Test binaries embedding the engine do
// not own the process, so they use NewStandalone, which reads the same
// switches from the environment without touching global state. All output
// goes to stderr by default; stdout is reserved for structured output.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRun):
//	logging.Setup(verbose, quiet, jsonFormat)
//	logger := logging.New("report")
//
//	// Inside a test binary:
//	logger := logging.NewStandalone("spectrum", os.Stderr, logging.OptionsFromEnv(os.LookupEnv))
package logging

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels.
// Re-exported so consumers do not need to import charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
	LevelFatal = log.FatalLevel
)

// Environment switches read by OptionsFromEnv.
const (
	EnvVerbose   = "SPECTRUM_VERBOSE"
	EnvQuiet     = "SPECTRUM_QUIET"
	EnvLogFormat = "SPECTRUM_LOG_FORMAT"
)

// Options are the logging switches shared by the CLI flags and the
// environment.
type Options struct {
	Verbose bool
	Quiet   bool
	JSON    bool
}

// OptionsFromEnv reads SPECTRUM_VERBOSE, SPECTRUM_QUIET (booleans) and
// SPECTRUM_LOG_FORMAT ("json" or "text"). Unparseable booleans count as
// unset.
func OptionsFromEnv(lookup func(string) (string, bool)) Options {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	flag := func(key string) bool {
		v, ok := lookup(key)
		if !ok {
			return false
		}
		on, err := strconv.ParseBool(v)
		return err == nil && on
	}
	format, _ := lookup(EnvLogFormat)
	return Options{
		Verbose: flag(EnvVerbose),
		Quiet:   flag(EnvQuiet),
		JSON:    format == "json",
	}
}

// Level returns the level selected by o. Quiet wins over Verbose.
func (o Options) Level() log.Level {
	switch {
	case o.Quiet:
		return log.ErrorLevel
	case o.Verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

func (o Options) formatter() log.Formatter {
	if o.JSON {
		return log.JSONFormatter
	}
	return log.TextFormatter
}

// Setup configures the global logging defaults. Call once during CLI initialization.
//
// Parameters:
//   - verbose: sets level to Debug (shows all messages)
//   - quiet: sets level to Error (hides Info and Warn messages)
//   - jsonFormat: switches to JSON formatter (NDJSON, suitable for CI/log aggregation)
//
// If both verbose and quiet are set, quiet wins.
func Setup(verbose, quiet, jsonFormat bool) {
	o := Options{Verbose: verbose, Quiet: quiet, JSON: jsonFormat}
	log.SetLevel(o.Level())
	log.SetOutput(os.Stderr)
	log.SetFormatter(o.formatter())
}

// New creates a logger with the given component prefix.
//
// The returned logger inherits global level and output settings from the
// default logger at creation time. Call Setup before New to ensure the
// correct configuration is inherited.
//
// An empty component string produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// NewStandalone creates a logger writing to w that is independent of the
// global defaults.
func NewStandalone(component string, w io.Writer, o Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:    component,
		Level:     o.Level(),
		Formatter: o.formatter(),
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// SetOutput overrides the output writer for the default logger.
//
// This is primarily useful for testing, where output can be captured
// with a bytes.Buffer. Remember to restore the original output using
// t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
