package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Format selects how log lines are encoded.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New builds the operator log. Diagnostics never go to the end user, so
// callers point out at stderr or a file rather than the rendered output.
func New(level string, format Format, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(ParseLevel(level))

	switch format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}
	return l
}

// ParseLevel maps a level name onto logrus, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *logrus.Logger {
	return New("error", FormatText, io.Discard)
}
