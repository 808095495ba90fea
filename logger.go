package fetchcache

// Fields carries structured context on a log line.
type Fields map[string]any

// Logger is the small leveled interface the cache logs through. Adapters for
// logrus, zap and slog live under log/; anything else just needs these four
// methods. A nil Options.Logger disables logging entirely.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger drops every message. It is the default when no Logger is given.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
