// Package obs contains observability utilities such as logging.
package obs

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the leveled terminal logger shared by every component.
// Diagnostics go to w (stderr in production) so they never interleave with
// the operator prompts written to stdout.
func NewLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "pos",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}), nil
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
