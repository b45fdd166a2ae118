// Package clock measures frame time for procedural animation.
package clock

import (
	"sync"
	"time"
)

// Clock tracks elapsed time and the time between successive Delta calls.
// A stopped clock starts itself on the first Delta or Elapsed call when auto-start is on.
type Clock struct {
	mu *sync.Mutex

	now       func() time.Time
	autoStart bool

	running   bool
	startTime time.Time
	oldTime   time.Time
	elapsed   time.Duration
}

// ClockBuilderOption is a functional option for configuring a Clock.
type ClockBuilderOption func(*Clock)

// WithNow replaces the time source. Tests use it to step time by hand.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithNow(now func() time.Time) ClockBuilderOption {
	return func(c *Clock) {
		c.now = now
	}
}

// WithAutoStart controls whether the first Delta or Elapsed call starts a stopped clock.
// Defaults to true.
//
// Parameters:
//   - autoStart: true to start on first use
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithAutoStart(autoStart bool) ClockBuilderOption {
	return func(c *Clock) {
		c.autoStart = autoStart
	}
}

// NewClock creates a stopped Clock.
//
// Parameters:
//   - options: functional options to configure the clock
//
// Returns:
//   - *Clock: the clock
func NewClock(options ...ClockBuilderOption) *Clock {
	c := &Clock{
		mu:        &sync.Mutex{},
		now:       time.Now,
		autoStart: true,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Start resets elapsed time to zero and starts the clock.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start()
}

// start must be called with the lock held.
func (c *Clock) start() {
	t := c.now()
	c.startTime = t
	c.oldTime = t
	c.elapsed = 0
	c.running = true
}

// Stop freezes elapsed time.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.advance()
	c.running = false
}

// Running reports whether the clock is started.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Delta returns the seconds since the previous Delta call, or since Start for the first call.
// A stopped clock without auto-start returns 0.
//
// Returns:
//   - float32: seconds since the previous call
func (c *Clock) Delta() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		if !c.autoStart {
			return 0
		}
		c.start()
		return 0
	}
	return float32(c.advance().Seconds())
}

// Elapsed returns the seconds the clock has been running. It also advances the reference
// point used by Delta.
//
// Returns:
//   - float32: total running seconds
func (c *Clock) Elapsed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		c.advance()
	} else if c.autoStart {
		c.start()
	}
	return float32(c.elapsed.Seconds())
}

// advance must be called with the lock held and the clock running.
func (c *Clock) advance() time.Duration {
	t := c.now()
	d := t.Sub(c.oldTime)
	c.oldTime = t
	c.elapsed += d
	return d
}
