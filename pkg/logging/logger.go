// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Component names used in the "component" field.
const (
	ComponentUpstream   = "upstream-client"
	ComponentBatch      = "batch-fetcher"
	ComponentFilter     = "category-filter"
	ComponentController = "listing-controller"
	ComponentPrerender  = "prerenderer"
	ComponentHTTP       = "http"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// ValidateLevel reports whether level names a known log level.
func ValidateLevel(level LogLevel) error {
	switch strings.ToLower(string(level)) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Upstream request targets
//   - Batch round start/finish, membership sizes
//   - Epoch changes and discarded stale results
//
// Info: Normal operation events
//   - Server startup/shutdown
//   - Category list loaded
//   - Listing ready (items, total, pages)
//
// Warn: Warning conditions that don't prevent operation
//   - Detail fetch failed (item falls back to its stub)
//   - Upstream schema violations
//   - Category list unavailable (filter panel stays empty)
//
// Error: Error conditions requiring attention
//   - Listing fetch failed
//   - HTTP handler failures
//   - Configuration errors
//
// Context Fields:
//   - endpoint: upstream endpoint label (/type, /pokemon/{name}, ...)
//   - status: HTTP status code
//   - error_class: client, server, network, decode, schema
//   - item: item name
//   - categories: selected category names
//   - page, total_pages, epoch: listing position
//   - round, batch_size: batch fetcher progress
