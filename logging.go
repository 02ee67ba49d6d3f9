package transit

import (
	"context"
	"log/slog"
	"time"
)

// Logger provides logging hooks for dispatch events.
type Logger interface {
	TransitionExecuted(ctx context.Context, from, to string)
	TransitionRejected(ctx context.Context, current, target, message string)
	HandlerCompleted(ctx context.Context, slot string, duration time.Duration, err error)
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: slog.Default(),
	}
}

// NewSlogLogger creates a logger backed by the given slog.Logger.
func NewSlogLogger(logger *slog.Logger) *DefaultLogger {
	return &DefaultLogger{
		logger: logger,
	}
}

func (l *DefaultLogger) TransitionExecuted(ctx context.Context, from, to string) {
	l.logger.InfoContext(ctx, "Transition executed",
		"from", from,
		"to", to,
	)
}

func (l *DefaultLogger) TransitionRejected(ctx context.Context, current, target, message string) {
	l.logger.WarnContext(ctx, "Transition rejected",
		"current", current,
		"target", target,
		"message", message,
	)
}

func (l *DefaultLogger) HandlerCompleted(ctx context.Context, slot string, duration time.Duration, err error) {
	if err != nil {
		l.logger.ErrorContext(ctx, "Handler completed with error",
			"slot", slot,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
	} else {
		l.logger.DebugContext(ctx, "Handler completed",
			"slot", slot,
			"duration_ms", duration.Milliseconds(),
		)
	}
}
