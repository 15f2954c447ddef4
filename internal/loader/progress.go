package loader

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress counts records resolved during one fetch cycle. Safe for concurrent use.
type Progress struct {
	total     int
	fetched   int
	startTime time.Time

	mu sync.RWMutex
}

// ProgressSnapshot is an immutable copy of Progress.
type ProgressSnapshot struct {
	Fetched         int
	Total           int
	PercentComplete float64
	Elapsed         time.Duration
}

// ProgressFunc receives a snapshot after every resolved record.
type ProgressFunc func(ProgressSnapshot)

// NewProgress starts a tracker expecting total records.
func NewProgress(total int) *Progress {
	return &Progress{total: total, startTime: time.Now()}
}

// SetTotal replaces the expected record count. The character's relations are only
// known once the primary record has arrived.
func (p *Progress) SetTotal(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

// Add records n more resolved records.
func (p *Progress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetched += n
}

// IsComplete reports whether every expected record has been resolved.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fetched >= p.total
}

// Snapshot returns the current counts.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pct := 0.0
	if p.total > 0 {
		pct = float64(p.fetched) / float64(p.total) * percentMultiplier
	}
	return ProgressSnapshot{
		Fetched:         p.fetched,
		Total:           p.total,
		PercentComplete: pct,
		Elapsed:         time.Since(p.startTime),
	}
}
