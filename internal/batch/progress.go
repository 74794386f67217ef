package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks a running batch job. It is safe for concurrent use.
type Progress struct {
	mu sync.RWMutex

	totalItems       int
	processedItems   int
	totalBatches     int
	processedBatches int
	batchSize        int
	startTime        time.Time
}

// NewProgress starts tracking a job of totalItems split into totalBatches.
func NewProgress(totalItems, totalBatches, batchSize int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		batchSize:    batchSize,
		startTime:    time.Now(),
	}
}

// AddProcessed records one finished batch of n items.
func (p *Progress) AddProcessed(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += n
	p.processedBatches++
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentCompleteLocked()
}

// Snapshot returns a consistent copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.startTime)
	var rate float64
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(p.processedItems) / s
	}
	// Remaining time extrapolates the average per item; 0 before the first item.
	var remaining time.Duration
	if p.processedItems > 0 {
		remaining = elapsed / time.Duration(p.processedItems) * time.Duration(p.totalItems-p.processedItems)
	}
	return ProgressSnapshot{
		TotalItems:         p.totalItems,
		ProcessedItems:     p.processedItems,
		TotalBatches:       p.totalBatches,
		ProcessedBatches:   p.processedBatches,
		BatchSize:          p.batchSize,
		PercentComplete:    p.percentCompleteLocked(),
		Complete:           p.processedItems >= p.totalItems,
		Elapsed:            elapsed,
		EstimatedRemaining: remaining,
		ItemsPerSecond:     rate,
	}
}

func (p *Progress) percentCompleteLocked() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
}

// ProgressSnapshot is an immutable view of Progress.
type ProgressSnapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	BatchSize        int
	PercentComplete  float64
	Complete         bool
	Elapsed          time.Duration
	// EstimatedRemaining is 0 until the first batch finishes.
	EstimatedRemaining time.Duration
	ItemsPerSecond     float64
}
