package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
)

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a text logger on stderr as the process default.
func Setup(level string) *slog.Logger {
	return SetupWriter(os.Stderr, level)
}

func SetupWriter(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	slog.SetDefault(logger)
	return logger
}

// WailsLevel is the runtime log level matching level.
func WailsLevel(level string) wailslogger.LogLevel {
	switch ParseLevel(level) {
	case slog.LevelDebug:
		return wailslogger.DEBUG
	case slog.LevelWarn:
		return wailslogger.WARNING
	case slog.LevelError:
		return wailslogger.ERROR
	default:
		return wailslogger.INFO
	}
}

// WailsLogger routes window runtime logs into slog.
type WailsLogger struct {
	logger *slog.Logger
	exit   func(code int)
}

var _ wailslogger.Logger = (*WailsLogger)(nil)

func NewWailsLogger(logger *slog.Logger) *WailsLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &WailsLogger{logger: logger.With("component", "wails"), exit: os.Exit}
}

func (l *WailsLogger) Print(message string)   { l.logger.Info(message) }
func (l *WailsLogger) Trace(message string)   { l.logger.Debug(message) }
func (l *WailsLogger) Debug(message string)   { l.logger.Debug(message) }
func (l *WailsLogger) Info(message string)    { l.logger.Info(message) }
func (l *WailsLogger) Warning(message string) { l.logger.Warn(message) }
func (l *WailsLogger) Error(message string)   { l.logger.Error(message) }

func (l *WailsLogger) Fatal(message string) {
	l.logger.Error(message, "fatal", true)
	l.exit(1)
}
