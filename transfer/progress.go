package transfer

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// progressTick matches the web UI's 200ms simulated progress timer.
	progressTick = 200 * time.Millisecond
	// progressCap clamps the estimate until the request actually resolves.
	progressCap = 90.0
	// progressStep bounds the random increment per tick.
	progressStep = 15.0
)

// Estimator drives an explicitly fake upload progress percentage: the
// boundary protocol reports no byte-level progress, so the value is a
// bounded, monotonic estimate that only reaches 100 when Finish is called.
type Estimator struct {
	fn   func(percent float64)
	tick time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewEstimator reports progress through fn. A nil fn is allowed and makes
// the estimator a no-op.
func NewEstimator(fn func(percent float64)) *Estimator {
	return &Estimator{fn: fn, tick: progressTick}
}

// Start begins emitting increasing progress values from 0.
func (e *Estimator) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop != nil {
		return
	}
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	go e.loop(e.stop, e.done)
}

// Finish halts the ticker and snaps progress to 100.
func (e *Estimator) Finish() {
	e.halt()
	e.report(100)
}

// Abort halts the ticker without completing the bar.
func (e *Estimator) Abort() {
	e.halt()
}

func (e *Estimator) halt() {
	e.mu.Lock()
	stop, done := e.stop, e.done
	e.stop, e.done = nil, nil
	e.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (e *Estimator) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	progress := 0.0
	e.report(0)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			progress += rand.Float64() * progressStep
			if progress > progressCap {
				progress = progressCap
			}
			e.report(progress)
		}
	}
}

func (e *Estimator) report(percent float64) {
	if e.fn != nil {
		e.fn(percent)
	}
}
