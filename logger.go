package arcam

import (
	"log/slog"

	"github.com/gogpu/arcam/internal/logx"
)

// SetLogger configures the logger for arcam and all its sub-packages.
// By default, arcam produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by arcam:
//   - [slog.LevelDebug]: per-frame diagnostics (taps, matrices, GL objects)
//   - [slog.LevelInfo]: lifecycle events (session created, resumed, closed)
//   - [slog.LevelWarn]: non-fatal issues (undecodable textures, failed anchors)
//   - [slog.LevelError]: session failures and lost camera frames
//
// Example:
//
//	// Enable info-level logging to stderr:
//	arcam.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	arcam.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger used by arcam.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logx.L()
}
