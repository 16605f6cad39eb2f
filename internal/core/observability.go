package core

import (
	"context"
	"time"
)

// Logger is the structured logging surface used by the session. Args are
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// MetricsRecorder observes the outcome of a session operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// ModificationsRecorder is implemented by metrics recorders that also track
// how many patched fields are live. The session reports the ledger count after
// Load and zero after Unload.
type ModificationsRecorder interface {
	SetActiveModifications(n int)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// Tracer starts spans around session operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan ends a span started by a Tracer.
type TraceSpan interface {
	End(err error)
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil keeps the no-op logger.
func WithLogger(logger Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for operation timing.
func WithClock(clock Clock) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMetrics sets the recorder observing Load, Unload and each patch.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(s *Session) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer sets the tracer wrapping Load, Unload and each patch.
func WithTracer(tracer Tracer) Option {
	return func(s *Session) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithSettingsName overrides the settings resource name (default Settings.xml).
func WithSettingsName(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.settingsName = name
		}
	}
}

// WithDefaultSettings overrides the settings written when the resource is missing.
func WithDefaultSettings(settings Settings) Option {
	return func(s *Session) {
		s.defaults = settings.Clone()
	}
}

// WithPatchEngine replaces the engine the session runs. Installed plugins
// append to it.
func WithPatchEngine(engine *PatchEngine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}
