package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide structured logger. Logs are JSON on
// stdout so they can be shipped as-is.
func Setup(level slog.Level, serviceName, version string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
}
