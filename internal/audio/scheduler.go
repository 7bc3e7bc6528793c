package audio

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs f after d elapses without blocking the caller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// SystemScheduler schedules on runtime timers.
type SystemScheduler struct{}

// AfterFunc implements Scheduler.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// VirtualClock is a Scheduler driven by Advance instead of wall time.
// Callbacks run on the goroutine calling Advance, in due-time order, with
// ties broken by scheduling order.
type VirtualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []virtualTimer
}

type virtualTimer struct {
	at  time.Duration
	seq int
	f   func()
}

// NewVirtualClock returns a clock at time zero.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// AfterFunc implements Scheduler.
func (c *VirtualClock) AfterFunc(d time.Duration, f func()) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = append(c.timers, virtualTimer{at: c.now + d, seq: c.seq, f: f})
	c.seq++
}

// Now returns the elapsed virtual time.
func (c *VirtualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of timers not yet fired.
func (c *VirtualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Timers scheduled by callbacks fire in the same call when due.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		next, ok := c.popDue(target)
		if !ok {
			break
		}
		c.now = next.at
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *VirtualClock) popDue(target time.Duration) (virtualTimer, bool) {
	if len(c.timers) == 0 {
		return virtualTimer{}, false
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at != c.timers[j].at {
			return c.timers[i].at < c.timers[j].at
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	if c.timers[0].at > target {
		return virtualTimer{}, false
	}
	next := c.timers[0]
	c.timers = c.timers[1:]
	return next, true
}
