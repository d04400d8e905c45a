package logging

import (
	"log/slog"
	"os"
)

// SetupJSON installs a JSON slog handler at the given level as the
// process-wide default logger.
func SetupJSON(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
