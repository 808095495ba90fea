// Package zap adapts a zap logger to the fetchcache Logger interface.
package zap

import (
	"github.com/unkn0wn-root/fetchcache"
	"go.uber.org/zap"
)

var _ fetchcache.Logger = ZapLogger{}

// ZapLogger forwards cache log lines to L, translating Fields to zap fields.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f fetchcache.Fields) { z.L.Debug(msg, fields(f)...) }
func (z ZapLogger) Info(msg string, f fetchcache.Fields)  { z.L.Info(msg, fields(f)...) }
func (z ZapLogger) Warn(msg string, f fetchcache.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z ZapLogger) Error(msg string, f fetchcache.Fields) { z.L.Error(msg, fields(f)...) }

func fields(f fetchcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
