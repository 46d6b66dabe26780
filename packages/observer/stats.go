package observer

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Stats tracks screenshot capture latency.
type Stats struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
}

// Summary is a snapshot of Stats.
type Summary struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

func NewStats() *Stats {
	return &Stats{
		// 1us to 60s, 3 significant digits
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one capture duration.
func (s *Stats) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > 60_000_000 {
		us = 60_000_000
	}
	s.mu.Lock()
	_ = s.histogram.RecordValue(us)
	s.mu.Unlock()
}

// Summary returns the current count and percentiles.
func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		Count: s.histogram.TotalCount(),
		P50:   time.Duration(s.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(s.histogram.ValueAtQuantile(95)) * time.Microsecond,
		Max:   time.Duration(s.histogram.Max()) * time.Microsecond,
	}
}
