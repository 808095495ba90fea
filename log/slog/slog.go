//go:build go1.21

// Package slog adapts the standard library's log/slog to the fetchcache
// Logger interface.
package slog

import (
	"context"
	stdslog "log/slog"

	"github.com/unkn0wn-root/fetchcache"
)

var _ fetchcache.Logger = Logger{}

// Logger forwards cache log lines to L, translating Fields to slog attrs.
type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f fetchcache.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f fetchcache.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f fetchcache.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f fetchcache.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(lvl stdslog.Level, msg string, f fetchcache.Fields) {
	var attrs []stdslog.Attr
	if len(f) > 0 {
		attrs = make([]stdslog.Attr, 0, len(f))
		for k, v := range f {
			attrs = append(attrs, stdslog.Any(k, v))
		}
	}
	s.L.LogAttrs(context.Background(), lvl, msg, attrs...)
}
