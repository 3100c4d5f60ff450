package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress counts finished items and batches. Safe for concurrent use.
type Progress struct {
	mu           sync.Mutex
	totalItems   int
	totalBatches int
	doneItems    int
	doneBatches  int
	start        time.Time
}

// Snapshot is a point-in-time copy of a Progress.
type Snapshot struct {
	TotalItems   int
	TotalBatches int
	DoneItems    int
	DoneBatches  int
	Elapsed      time.Duration
}

// NewProgress starts the clock for totalItems split into totalBatches.
func NewProgress(totalItems, totalBatches int) *Progress {
	return &Progress{totalItems: totalItems, totalBatches: totalBatches, start: time.Now()}
}

// Add records one finished batch of n items and returns the new snapshot.
func (p *Progress) Add(n int) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doneItems += n
	p.doneBatches++
	return p.snapshotLocked()
}

// Snapshot returns the current counts.
func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Progress) snapshotLocked() Snapshot {
	return Snapshot{
		TotalItems:   p.totalItems,
		TotalBatches: p.totalBatches,
		DoneItems:    p.doneItems,
		DoneBatches:  p.doneBatches,
		Elapsed:      time.Since(p.start),
	}
}

// Ratio returns completion in [0, 1].
func (s Snapshot) Ratio() float64 {
	if s.TotalItems == 0 {
		return 1
	}
	return float64(s.DoneItems) / float64(s.TotalItems)
}

// Percent returns completion in [0, 100].
func (s Snapshot) Percent() float64 {
	return s.Ratio() * percentMultiplier
}

// IsComplete reports whether every item is done.
func (s Snapshot) IsComplete() bool {
	return s.DoneItems >= s.TotalItems
}

// ItemsPerSecond is the throughput so far.
func (s Snapshot) ItemsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.DoneItems) / s.Elapsed.Seconds()
}

// Remaining estimates the time left at the current throughput.
func (s Snapshot) Remaining() time.Duration {
	rate := s.ItemsPerSecond()
	if rate == 0 || s.IsComplete() {
		return 0
	}
	return time.Duration(float64(s.TotalItems-s.DoneItems) / rate * float64(time.Second))
}
