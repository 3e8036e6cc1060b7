package world

import "time"

// Clock is the simulation time source. The game advances it once per frame
// by the frame delta; timers compare against it instead of the wall clock.
type Clock struct {
	now time.Duration
}

// NewClock returns a clock starting at zero.
func NewClock() *Clock {
	return &Clock{}
}

// Advance moves the clock forward. Negative deltas are ignored.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
}

// Now returns the simulated time since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Timer fires once Delay has elapsed since the last Start and stays fired
// until started again. Every cooldown in the game is a Timer.
type Timer struct {
	Delay time.Duration

	clock   *Clock
	started time.Duration
	done    bool
}

// NewTimer creates a timer that starts counting now.
func NewTimer(clock *Clock, delay time.Duration) *Timer {
	t := &Timer{Delay: delay, clock: clock}
	t.Start()
	return t
}

// NewArmedTimer creates a timer that is already elapsed, so its first Tick fires.
func NewArmedTimer(clock *Clock, delay time.Duration) *Timer {
	t := &Timer{Delay: delay, clock: clock}
	t.started = clock.Now() - delay
	return t
}

// Start re-arms the timer from the current clock time.
func (t *Timer) Start() {
	t.started = t.clock.Now()
	t.done = false
}

// Finish marks the timer as elapsed without waiting.
func (t *Timer) Finish() {
	t.done = true
}

// Tick reports whether the delay has passed. It is idempotent within a frame.
func (t *Timer) Tick() bool {
	if !t.done && t.clock.Now()-t.started >= t.Delay {
		t.done = true
	}
	return t.done
}

// Done reports the last known state without re-evaluating the clock.
func (t *Timer) Done() bool {
	return t.done
}

// Remaining returns the time left until the timer fires, zero once done.
func (t *Timer) Remaining() time.Duration {
	if t.Tick() {
		return 0
	}
	return t.Delay - (t.clock.Now() - t.started)
}
