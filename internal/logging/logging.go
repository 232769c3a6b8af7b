package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// Setup installs a JSON slog handler at the requested level as the
// process-wide default logger.
func Setup(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	slog.SetDefault(slog.New(handler))
}

// Fatalf logs at error level and exits. Reserved for startup failures
// where the process cannot continue (unreadable config, missing or
// unparseable dataset).
func Fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
