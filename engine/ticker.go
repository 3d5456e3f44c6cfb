package engine

import (
	"sync"
	"time"
)

// Ticker is the tick source driving the scheduler
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds a Ticker firing every interval
type TickerFactory func(interval time.Duration) Ticker

// realTicker wraps time.Ticker
type realTicker struct {
	t *time.Ticker
}

// NewRealTicker returns a wall-clock ticker
func NewRealTicker(interval time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(interval)}
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// ManualTicker is a controllable tick source for tests and stepping
type ManualTicker struct {
	mu       sync.Mutex
	now      time.Time
	interval time.Duration

	ch       chan time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewManualTicker creates a ticker that only fires on Tick
func NewManualTicker(start time.Time, interval time.Duration) *ManualTicker {
	return &ManualTicker{
		now:      start,
		interval: interval,
		ch:       make(chan time.Time),
		done:     make(chan struct{}),
	}
}

// Factory returns a TickerFactory handing out this ticker
func (m *ManualTicker) Factory() TickerFactory {
	return func(time.Duration) Ticker { return m }
}

func (m *ManualTicker) C() <-chan time.Time { return m.ch }

// Stop unblocks pending and future Tick calls
func (m *ManualTicker) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// Tick advances the mock time by one interval and delivers it
// Blocks until the receiver takes it; returns false once stopped
func (m *ManualTicker) Tick() bool {
	m.mu.Lock()
	m.now = m.now.Add(m.interval)
	now := m.now
	m.mu.Unlock()

	select {
	case m.ch <- now:
		return true
	case <-m.done:
		return false
	}
}

// Now returns the current mock time
func (m *ManualTicker) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
