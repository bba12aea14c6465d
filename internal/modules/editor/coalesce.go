package editor

import (
	"sync"
	"time"
)

// FrameScheduler runs a callback on the next frame tick. The editor uses it
// as a backpressure valve: pointer events arrive faster than geometry needs
// recomputing, so at most one mutation is applied per scheduled frame.
type FrameScheduler interface {
	// Schedule arranges for fn to run once on the next tick and returns a
	// cancel function. Cancel is safe to call more than once and after the
	// callback has fired.
	Schedule(fn func()) (cancel func())
}

// tickScheduler approximates a display refresh callback with a timer. The
// default interval matches a 60Hz frame budget.
type tickScheduler struct {
	interval time.Duration
}

// NewFrameScheduler returns a timer-backed scheduler; interval <= 0 selects
// the 60Hz default.
func NewFrameScheduler(interval time.Duration) FrameScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &tickScheduler{interval: interval}
}

func (t *tickScheduler) Schedule(fn func()) func() {
	timer := time.AfterFunc(t.interval, fn)
	var once sync.Once
	return func() {
		once.Do(func() { timer.Stop() })
	}
}

// coalescer keeps only the newest pointer position and guarantees a single
// pending flush. Superseded positions are discarded, never queued.
type coalescer struct {
	scheduler FrameScheduler

	mu      sync.Mutex
	latest  pointer
	has     bool
	pending bool
	cancel  func()
}

type pointer struct {
	X, Y float64
}

func newCoalescer(scheduler FrameScheduler) *coalescer {
	return &coalescer{scheduler: scheduler}
}

// Offer records the newest pointer position and schedules a flush if none is
// pending. flush receives the most recent position at tick time.
func (c *coalescer) Offer(p pointer, flush func(pointer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = p
	c.has = true
	if c.pending {
		return
	}
	c.pending = true
	c.cancel = c.scheduler.Schedule(func() {
		c.mu.Lock()
		if !c.pending || !c.has {
			c.mu.Unlock()
			return
		}
		latest := c.latest
		c.pending = false
		c.cancel = nil
		c.mu.Unlock()
		flush(latest)
	})
}

// Stop drops any scheduled-but-unapplied flush. Idempotent; called on every
// session exit path.
func (c *coalescer) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.pending = false
	c.has = false
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
