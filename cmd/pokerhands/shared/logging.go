package shared

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Log output formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// SetupLogger configures a human-readable logger writing to w
func SetupLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// SetupStructuredLogger configures a logger emitting one JSON object per line
func SetupStructuredLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Formatter:       log.JSONFormatter,
	})
}

// NewLogger picks the logger for the given output format
func NewLogger(w io.Writer, format string, level log.Level) *log.Logger {
	if format == LogFormatJSON {
		return SetupStructuredLogger(w, level)
	}
	return SetupLogger(w, level)
}
