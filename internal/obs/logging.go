// Package obs contains observability utilities such as logging and metrics.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the global structured logger used by the service.
var Logger *slog.Logger

// InitLogger initializes the global Logger with JSON handler at info level.
func InitLogger() {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	Logger = slog.New(h)
}
