// Package cdlint implements the functionality of the program, the CLI in
// package cmd is simply the entrypoint to exported functions and methods in
// this package.
package cdlint

import (
	"io"
	"time"

	"charm.land/log/v2"
)

// CDLint represents the cdlint program.
type CDLint struct {
	stdout io.Writer   // Normal program output is written here
	stderr io.Writer   // Logs and errors are written here
	logger *log.Logger // The logger for the application
}

// New returns a new [CDLint].
func New(debug bool, stdout, stderr io.Writer) CDLint {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(stderr, log.Options{
		TimeFormat:      time.RFC3339Nano,
		Level:           level,
		Prefix:          "cdlint",
		ReportTimestamp: true,
	})

	logger.SetStyles(defaultLogStyles())

	return CDLint{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}
