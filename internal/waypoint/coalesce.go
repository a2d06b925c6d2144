package waypoint

import (
	"sort"
	"sync"
	"time"
)

// Coalescer batches filesystem churn into propagation passes. The first
// event of a burst flushes immediately (leading edge) and opens a quiet
// window; events inside the window accumulate in the pending set and
// extend it; when the window elapses the accumulated set flushes once
// (trailing edge) and the coalescer re-arms.
type Coalescer struct {
	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	quiet   time.Duration
	flush   func(folders []string)
}

// NewCoalescer creates a Coalescer with the given quiet period.
func NewCoalescer(quiet time.Duration, flush func(folders []string)) *Coalescer {
	if quiet <= 0 {
		quiet = 500 * time.Millisecond
	}
	return &Coalescer{
		pending: make(map[string]struct{}),
		quiet:   quiet,
		flush:   flush,
	}
}

// Add records a changed folder and schedules (or extends) a flush.
func (c *Coalescer) Add(folder string) {
	c.mu.Lock()
	c.pending[folder] = struct{}{}
	if c.timer != nil {
		c.timer.Reset(c.quiet)
		c.mu.Unlock()
		return
	}
	// Leading edge: drain now, open the quiet window.
	batch := c.drainLocked()
	c.timer = time.AfterFunc(c.quiet, c.onQuiet)
	c.mu.Unlock()
	c.flush(batch)
}

func (c *Coalescer) onQuiet() {
	c.mu.Lock()
	batch := c.drainLocked()
	c.timer = nil
	c.mu.Unlock()
	if len(batch) > 0 {
		c.flush(batch)
	}
}

// drainLocked atomically takes the pending set. Caller holds c.mu.
func (c *Coalescer) drainLocked() []string {
	if len(c.pending) == 0 {
		return nil
	}
	batch := make([]string, 0, len(c.pending))
	for f := range c.pending {
		batch = append(batch, f)
	}
	sort.Strings(batch)
	c.pending = make(map[string]struct{})
	return batch
}

// Stop cancels any scheduled flush and discards pending entries.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = make(map[string]struct{})
}
