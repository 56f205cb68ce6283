package batch

import (
	"log/slog"
	"time"
)

// Summary captures the outcome of one batch run.
type Summary struct {
	Total    int
	Failed   int
	Workers  int
	Duration time.Duration
}

// Log emits the run totals through the structured logger.
func (s Summary) Log() {
	slog.Info("batch complete",
		"total", s.Total,
		"failed", s.Failed,
		"workers", s.Workers,
		"duration_ms", s.Duration.Milliseconds(),
	)
}
