// Package logging builds the zap loggers shared by the neighbor and storefront
// binaries. Both are full-screen terminal programs, so log output goes to a file
// under the config directory rather than stderr, where it would corrupt the UI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Dir is the directory holding the log file. Required.
	Dir string
	// Name is the log file base name, e.g. "neighbor". Required.
	Name string
	// Verbose enables debug-level output.
	Verbose bool
	// Console routes output to stderr instead of a file. Used by the
	// non-interactive subcommands where a file sink is just friction.
	Console bool
}

// New constructs a production zap logger per Options.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if opts.Console {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		return cfg.Build()
	}

	logsDir := filepath.Join(opts.Dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	path := filepath.Join(logsDir, opts.Name+".log")
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// Nop returns a no-op logger for tests and for callers that opt out of logging.
func Nop() *zap.Logger {
	return zap.NewNop()
}
