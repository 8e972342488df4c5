package overlay

import (
	"time"
)

// FrameStats keeps a rolling window of frame durations.
type FrameStats struct {
	history []time.Duration
	next    int
	full    bool

	Last, Avg, Min, Max time.Duration
}

// NewFrameStats returns stats over the last n frames.
func NewFrameStats(n int) *FrameStats {
	return &FrameStats{history: make([]time.Duration, max(n, 1))}
}

// Add records one frame and recomputes the window statistics.
func (f *FrameStats) Add(d time.Duration) {
	f.history[f.next] = d
	f.next++
	if f.next == len(f.history) {
		f.next = 0
		f.full = true
	}
	f.Last = d

	window := f.history[:f.next]
	if f.full {
		window = f.history
	}
	var total time.Duration
	f.Min, f.Max = window[0], window[0]
	for _, v := range window {
		total += v
		f.Min = min(f.Min, v)
		f.Max = max(f.Max, v)
	}
	f.Avg = total / time.Duration(len(window))
}

// FPS is the frame rate implied by the average frame time.
func (f *FrameStats) FPS() float64 {
	if f.Avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(f.Avg)
}
