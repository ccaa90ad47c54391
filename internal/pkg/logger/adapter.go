package logger

import (
	"log/slog"

	"network_switcher/internal/app/port"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// slogAdapter implements port.Logger on top of a *slog.Logger.
// A nil logger delegates to the package-level helpers.
type slogAdapter struct {
	l *slog.Logger
}

var _ port.Logger = (*slogAdapter)(nil)

// NewSlogAdapter returns a port.Logger backed by the process-wide logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewAdapter wraps an existing slog logger.
func NewAdapter(l *slog.Logger) port.Logger {
	return &slogAdapter{l: l}
}

// Named returns a port.Logger tagged with a component name.
func Named(name string) port.Logger {
	return &slogAdapter{l: slog.New(zapslog.NewHandler(Zap().Named(name).Core()))}
}

// Nop returns a port.Logger that discards everything.
func Nop() port.Logger {
	return &slogAdapter{l: slog.New(zapslog.NewHandler(zap.NewNop().Core()))}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	if a.l == nil {
		Info(msg, args...)
		return
	}
	a.l.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.l == nil {
		Debug(msg, args...)
		return
	}
	a.l.Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.l == nil {
		Warn(msg, args...)
		return
	}
	a.l.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	if a.l == nil {
		Error(msg, args...)
		return
	}
	a.l.Error(msg, args...)
}
