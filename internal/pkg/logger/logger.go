package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalZap    *zap.Logger
	globalLogger *slog.Logger
)

// Init builds the process-wide zap logger at the given level and encoding
// ("json" or "console") and installs it as the default slog logger.
func Init(levelStr, encoding string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	if encoding == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	sl := slog.New(zapslog.NewHandler(zl.Core()))

	mu.Lock()
	globalZap = zl
	globalLogger = sl
	mu.Unlock()

	slog.SetDefault(sl)
	return zl, nil
}

// Zap returns the process-wide zap logger, initialising it at INFO if needed.
func Zap() *zap.Logger {
	ensureInitialized()
	mu.RLock()
	defer mu.RUnlock()
	return globalZap
}

func current() *slog.Logger {
	ensureInitialized()
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

func ensureInitialized() {
	mu.RLock()
	ready := globalLogger != nil
	mu.RUnlock()
	if ready {
		return
	}
	if _, err := Init("info", "json"); err != nil {
		mu.Lock()
		globalZap = zap.NewNop()
		globalLogger = slog.New(zapslog.NewHandler(globalZap.Core()))
		mu.Unlock()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	current().Error(msg, args...)
	_ = Zap().Sync()
	os.Exit(1)
}
