package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewWithWriter creates a charm log that writes to w at the global log level.
func NewWithWriter(prefix string, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Quiet creates a charm log that discards everything. Used where callers only want results.
func Quiet(prefix string) *log.Logger {
	l := NewWithWriter(prefix, io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}
