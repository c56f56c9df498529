package util

import (
	"log/slog"
	"time"
)

// Trace logs the start of an operation and returns a func that logs its
// duration. Typical use: defer util.Trace("make transparent")()
func Trace(msg string) func() {
	start := time.Now()
	slog.Debug("start", "op", msg)
	return func() {
		slog.Info("finished", "op", msg, "elapsed", time.Since(start).Round(time.Millisecond))
	}
}
