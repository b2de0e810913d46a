// Package log provides the logging collaborator that is injected into
// the emulator components. Nothing in the emulator logs through a
// package level logger.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger that writes info and above to stderr.
func New() Logger {
	return NewWithLevel(os.Stderr, logrus.InfoLevel)
}

// NewWithLevel returns a Logger writing to out, discarding anything
// below the given level.
func NewWithLevel(out io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// ParseLevel converts a level name (debug, info, error, ...) to a logrus.Level.
func ParseLevel(level string) (logrus.Level, error) {
	return logrus.ParseLevel(level)
}
