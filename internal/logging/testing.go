// pattern: Imperative Shell

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards everything.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// TestLogManager logs at debug level to a channel only, so tests can assert
// on what was logged.
type TestLogManager struct {
	*scopes
	sink *ChannelSink
}

// NewTestLogManager returns a manager buffering up to size entries.
func NewTestLogManager(size int) *TestLogManager {
	sink := NewChannelSink(size)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), sink, zapcore.DebugLevel)
	return &TestLogManager{
		scopes: newScopes(zap.New(core), zapcore.DebugLevel),
		sink:   sink,
	}
}

// Entries returns the logged entries in order.
func (m *TestLogManager) Entries() <-chan LogEntry { return m.sink.Entries() }

// Logged returns everything logged so far without blocking.
func (m *TestLogManager) Logged() []LogEntry { return m.sink.Drain(cap(m.sink.entries)) }

// Close closes the underlying channel.
func (m *TestLogManager) Close() error { return m.sink.Close() }
