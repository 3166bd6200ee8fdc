package netsync

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around logging stack
// (see log/zap, log/logrus, log/slog). A nil Logger in options disables logging.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

type MasterOptions struct {
	// Sink receives every encoded payload. Required.
	Sink Sink

	// Store, when set, receives the master State after every change.
	// Session names the stream in Store and is required with it.
	Store   StateStore
	Session string

	Logger Logger
	Hooks  Hooks
}

type FollowerOptions struct {
	// OnChange is called after each state change, outside the follower lock.
	OnChange func(State)

	Logger Logger
	Hooks  Hooks
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
