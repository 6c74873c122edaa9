// pattern: Imperative Shell

package logging

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config configures a Manager.
type Config struct {
	FilePath       string // log file, rotated by size
	MaxSizeMB      int
	MaxBackups     int
	MaxAgeDays     int
	Level          string // debug, info, warn, error
	ChannelBufSize int    // entries kept for the log panel
}

// LoggerProvider hands out scoped loggers. Manager and TestLogManager
// both implement it.
type LoggerProvider interface {
	For(scope string) *ScopedLogger
}

// EntrySource exposes the stream of decoded entries.
type EntrySource interface {
	Entries() <-chan LogEntry
}

// DefaultFilePath returns $XDG_STATE_HOME/yukari/yukari.log, falling back to
// ~/.local/state.
func DefaultFilePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "yukari", "yukari.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "state", "yukari", "yukari.log")
	}
	return filepath.Join(home, ".local", "state", "yukari", "yukari.log")
}

// ScopedLogger is a slog-style logger bound to one scope. The zero value
// and NopLogger discard everything.
type ScopedLogger struct {
	slog  *slog.Logger
	scope string
}

func (l *ScopedLogger) Debug(msg string, args ...any) {
	if l != nil && l.slog != nil {
		l.slog.Debug(msg, args...)
	}
}

func (l *ScopedLogger) Info(msg string, args ...any) {
	if l != nil && l.slog != nil {
		l.slog.Info(msg, args...)
	}
}

func (l *ScopedLogger) Warn(msg string, args ...any) {
	if l != nil && l.slog != nil {
		l.slog.Warn(msg, args...)
	}
}

func (l *ScopedLogger) Error(msg string, args ...any) {
	if l != nil && l.slog != nil {
		l.slog.Error(msg, args...)
	}
}

// With returns a logger that adds args to every entry.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l == nil || l.slog == nil {
		return l
	}
	return &ScopedLogger{slog: l.slog.With(args...), scope: l.scope}
}

// Scope returns the name the logger was created for.
func (l *ScopedLogger) Scope() string {
	if l == nil {
		return ""
	}
	return l.scope
}

// scopes caches one ScopedLogger per scope over a shared zap core.
type scopes struct {
	base    *zap.Logger
	level   zapcore.Level
	mu      sync.RWMutex
	loggers map[string]*ScopedLogger
}

func newScopes(base *zap.Logger, level zapcore.Level) *scopes {
	return &scopes{base: base, level: level, loggers: make(map[string]*ScopedLogger)}
}

func (s *scopes) For(scope string) *ScopedLogger {
	s.mu.RLock()
	l, ok := s.loggers[scope]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.loggers[scope]; ok {
		return l
	}
	l = &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: s.base.Named(scope), level: s.level}),
		scope: scope,
	}
	s.loggers[scope] = l
	return l
}

// Manager writes every entry twice: as JSON to a rotating file and decoded
// to a ChannelSink for the log panel.
type Manager struct {
	*scopes
	sink *ChannelSink
	file *lumberjack.Logger
}

// NewManager opens the log file (creating its directory) and builds the
// shared core.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, errors.New("logging: FilePath is required")
	}
	if cfg.ChannelBufSize <= 0 {
		cfg.ChannelBufSize = 1000
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 7
	}
	level := ParseZapLevel(cfg.Level)

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, err
	}
	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	sink := NewChannelSink(cfg.ChannelBufSize)

	enc := zapcore.NewJSONEncoder(encoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(file), level),
		zapcore.NewCore(enc.Clone(), sink, level),
	)

	return &Manager{
		scopes: newScopes(zap.New(core), level),
		sink:   sink,
		file:   file,
	}, nil
}

// Entries returns the decoded entries for the log panel.
func (m *Manager) Entries() <-chan LogEntry { return m.sink.Entries() }

// Sink returns the channel sink so other sources can feed the panel.
func (m *Manager) Sink() *ChannelSink { return m.sink }

// Sync flushes buffered output.
func (m *Manager) Sync() error { return m.base.Sync() }

// Close flushes and releases the file and the sink.
func (m *Manager) Close() error {
	_ = m.Sync()
	_ = m.sink.Close()
	return m.file.Close()
}

// ParseZapLevel maps a level name to zap, defaulting to info.
func ParseZapLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.EpochTimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return cfg
}

// zapSlogHandler lets slog call sites write through a zap logger.
type zapSlogHandler struct {
	zap   *zap.Logger
	level zapcore.Level
	attrs []slog.Attr
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return toZapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields = append(fields, zap.Any(a.Key, a.Value.Any()))
	}
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, zap.Any(a.Key, a.Value.Any()))
		return true
	})
	if ce := h.zap.Check(toZapLevel(r.Level), r.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &zapSlogHandler{
		zap:   h.zap,
		level: h.level,
		attrs: append(cloneAttrs(h.attrs), attrs...),
	}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	return &zapSlogHandler{zap: h.zap.Named(name), level: h.level, attrs: h.attrs}
}

func cloneAttrs(attrs []slog.Attr) []slog.Attr {
	return append([]slog.Attr(nil), attrs...)
}

func toZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
