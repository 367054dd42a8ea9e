package core

import (
	"math"
	"sync"
	"time"
)

// TimeSource supplies monotonic wall-clock readings to a CycleClock.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the real monotonic clock.
type SystemTime struct{}

// Now returns time.Now().
func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a controllable TimeSource for tests and replays.
type ManualTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTime creates a manual time source starting at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the manual time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// CycleClock converts elapsed wall time into a whole number of pending logic
// cycles at a variable rate. The fractional remainder of each update is carried
// into the next one, so the long-run cycle count tracks elapsed/msPerCycle.
//
// CycleClock is not safe for concurrent use; engines guard it with their own lock.
type CycleClock struct {
	source      TimeSource
	msPerCycle  float64
	pending     int
	residualMs  float64
	paused      bool
	lastUpdate  time.Time
	cyclesTotal uint64
}

// NewCycleClock creates a clock ticking at cyclesPerSecond.
// A nil source uses SystemTime.
func NewCycleClock(cyclesPerSecond float64, source TimeSource) *CycleClock {
	if source == nil {
		source = SystemTime{}
	}
	c := &CycleClock{source: source}
	c.SetRate(cyclesPerSecond)
	c.Reset()
	return c
}

// SetRate changes the cycle rate. Pending cycles and the residual are kept.
// Non-positive rates are ignored.
func (c *CycleClock) SetRate(cyclesPerSecond float64) {
	if cyclesPerSecond <= 0 {
		return
	}
	c.msPerCycle = 1000.0 / cyclesPerSecond
}

// Rate returns the current rate in cycles per second.
func (c *CycleClock) Rate() float64 {
	return 1000.0 / c.msPerCycle
}

// MsPerCycle returns the length of one cycle in milliseconds.
func (c *CycleClock) MsPerCycle() float64 {
	return c.msPerCycle
}

// Reset drops pending cycles and the residual, unpauses the clock and
// resynchronizes it to the current time.
func (c *CycleClock) Reset() {
	c.pending = 0
	c.residualMs = 0
	c.paused = false
	c.lastUpdate = c.source.Now()
}

// Update accumulates cycles for the time elapsed since the previous update.
// Time that passes while paused is discarded.
func (c *CycleClock) Update() {
	now := c.source.Now()
	if !c.paused {
		delta := float64(now.Sub(c.lastUpdate))/float64(time.Millisecond) + c.residualMs
		if delta > 0 {
			whole := int(math.Floor(delta / c.msPerCycle))
			c.pending += whole
			c.residualMs = math.Mod(delta, c.msPerCycle)
		}
	}
	c.lastUpdate = now
}

// ConsumeCycle takes one pending cycle. It returns false when none is owed.
func (c *CycleClock) ConsumeCycle() bool {
	if c.pending > 0 {
		c.pending--
		c.cyclesTotal++
		return true
	}
	return false
}

// PeekCycle reports whether a cycle is pending without consuming it.
func (c *CycleClock) PeekCycle() bool {
	return c.pending > 0
}

// Pending returns the number of cycles owed.
func (c *CycleClock) Pending() int {
	return c.pending
}

// Residual returns the carried sub-cycle remainder in milliseconds.
func (c *CycleClock) Residual() float64 {
	return c.residualMs
}

// Consumed returns the number of cycles consumed since the clock was created.
func (c *CycleClock) Consumed() uint64 {
	return c.cyclesTotal
}

// SetPaused pauses or resumes cycle accumulation.
func (c *CycleClock) SetPaused(paused bool) {
	c.paused = paused
}

// IsPaused reports whether accumulation is paused.
func (c *CycleClock) IsPaused() bool {
	return c.paused
}
