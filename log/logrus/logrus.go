// Package logrus adapts a logrus entry to the fetchcache Logger interface.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/fetchcache"
)

var _ fetchcache.Logger = LogrusLogger{}

// LogrusLogger forwards cache log lines to E with the fields attached.
type LogrusLogger struct{ E *logrus.Entry }

// New wraps a logrus.Logger at its top-level entry.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: logrus.NewEntry(l)}
}

func (l LogrusLogger) Debug(msg string, f fetchcache.Fields) { l.entry(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f fetchcache.Fields)  { l.entry(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f fetchcache.Fields)  { l.entry(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f fetchcache.Fields) { l.entry(f).Error(msg) }

func (l LogrusLogger) entry(f fetchcache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}
