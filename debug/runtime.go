package debug

// Runtime diagnostics started only when [Logging] debug is true.
// Emits goroutine count, stack and heap usage, process RSS where available and
// the capture counters at a fixed interval, to correlate long monitoring runs
// with memory growth.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/soocke/motion-guard-go/domain/capture"
)

// StatsFunc returns the current capture counters.
type StatsFunc func() capture.CaptureStats

// Sample is one diagnostics reading.
type Sample struct {
	Goroutines uint64
	StackInuse uint64
	HeapAlloc  uint64
	HeapInuse  uint64
	NumGC      uint32
	RSS        uint64 // 0 when the platform reader is unavailable
	Capture    capture.CaptureStats
}

// Read takes one sample. stats may be nil.
func Read(stats StatsFunc) Sample {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Sample{
		Goroutines: samples[0].Value.Uint64(),
		StackInuse: ms.StackInuse,
		HeapAlloc:  ms.HeapAlloc,
		HeapInuse:  ms.HeapInuse,
		NumGC:      ms.NumGC,
	}
	if rss, err := processRSS(); err == nil {
		s.RSS = rss
	}
	if stats != nil {
		s.Capture = stats()
	}
	return s
}

// StartRuntimeLogger logs a Sample every interval until ctx is done.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, stats StatsFunc) {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			if ctx.Err() != nil {
				return
			}
			s := Read(stats)
			logger.Info("runtime",
				slog.Uint64("goroutines", s.Goroutines),
				slog.Uint64("stack_inuse", s.StackInuse),
				slog.Uint64("heap_alloc", s.HeapAlloc),
				slog.Uint64("heap_inuse", s.HeapInuse),
				slog.Uint64("num_gc", uint64(s.NumGC)),
				slog.Uint64("rss", s.RSS),
				slog.Uint64("captures", s.Capture.Captures),
				slog.Uint64("capture_failures", s.Capture.Failures),
				slog.Duration("avg_capture", s.Capture.AvgCapture),
			)
		}
	}()
}
