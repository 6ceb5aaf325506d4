package logger

import (
	"io"
	"os"

	"github.com/grovetools/core/cli"
	"github.com/sirupsen/logrus"
)

// DebugEnabled reports whether debug logging was requested via the environment.
func DebugEnabled() bool {
	return os.Getenv("RALLYLOG_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// New returns a logger for diagnostics. Rendered log output never goes
// through it; it only carries what a user debugging a run would want.
// jsonOutput switches the lines to logrus JSON.
func New(w io.Writer, verbose, jsonOutput bool) *logrus.Logger {
	level := logrus.WarnLevel
	if verbose || DebugEnabled() {
		level = logrus.DebugLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	if jsonOutput {
		formatter = &logrus.JSONFormatter{DisableTimestamp: true}
	}

	return cli.NewLogger(
		cli.WithOutput(w),
		cli.WithLevel(level),
		cli.WithFormatter(formatter),
	)
}
