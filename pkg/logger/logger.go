package logger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
)

// Logger wraps slog so the rest of the codebase never imports it directly.
type Logger struct {
	s *slog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	level := parseLevel(cfg.LoggerMode.Level)

	var handler slog.Handler
	if cfg.LoggerMode.Prod {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return &Logger{s: slog.New(handler)}, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) slogger() *slog.Logger {
	// Zero-value Logger still works; tests construct Logger{} directly.
	if l == nil || l.s == nil {
		return slog.Default()
	}
	return l.s
}

func (l Logger) Debug(msg string, args ...any) { l.slogger().Debug(msg, args...) }
func (l Logger) Info(msg string, args ...any)  { l.slogger().Info(msg, args...) }
func (l Logger) Warn(msg string, args ...any)  { l.slogger().Warn(msg, args...) }
func (l Logger) Error(msg string, args ...any) { l.slogger().Error(msg, args...) }

func (l Logger) Debugf(format string, args ...any) { l.slogger().Debug(fmt.Sprintf(format, args...)) }
func (l Logger) Infof(format string, args ...any)  { l.slogger().Info(fmt.Sprintf(format, args...)) }
func (l Logger) Warnf(format string, args ...any)  { l.slogger().Warn(fmt.Sprintf(format, args...)) }
func (l Logger) Errorf(format string, args ...any) { l.slogger().Error(fmt.Sprintf(format, args...)) }
