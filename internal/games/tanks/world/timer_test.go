package world

import (
	"testing"
	"time"
)

func TestTimerFiresAfterDelay(t *testing.T) {
	clock := NewClock()
	timer := NewTimer(clock, time.Second)

	if timer.Tick() {
		t.Fatal("fresh timer should not fire")
	}
	clock.Advance(999 * time.Millisecond)
	if timer.Tick() {
		t.Fatal("timer fired before its delay")
	}
	clock.Advance(time.Millisecond)
	if !timer.Tick() {
		t.Fatal("timer should fire once the delay passed")
	}
	// Stays fired until restarted, and repeated ticks agree
	if !timer.Tick() || !timer.Done() {
		t.Fatal("fired timer should stay done")
	}

	timer.Start()
	if timer.Tick() {
		t.Fatal("restarted timer should not fire immediately")
	}
}

func TestArmedTimerFiresImmediately(t *testing.T) {
	clock := NewClock()
	timer := NewArmedTimer(clock, 5*time.Second)
	if !timer.Tick() {
		t.Fatal("armed timer should fire on first tick")
	}
	timer.Start()
	clock.Advance(4 * time.Second)
	if timer.Tick() {
		t.Fatal("armed timer should wait after Start")
	}
}

func TestTimerFinishAndRemaining(t *testing.T) {
	clock := NewClock()
	timer := NewTimer(clock, 10*time.Second)
	clock.Advance(4 * time.Second)

	if got := timer.Remaining(); got != 6*time.Second {
		t.Errorf("Remaining() = %v, expected 6s", got)
	}
	timer.Finish()
	if !timer.Tick() || timer.Remaining() != 0 {
		t.Error("finished timer should be done with nothing remaining")
	}
}

func TestClockIgnoresNegativeDelta(t *testing.T) {
	clock := NewClock()
	clock.Advance(time.Second)
	clock.Advance(-time.Hour)
	if clock.Now() != time.Second {
		t.Errorf("Now() = %v, expected 1s", clock.Now())
	}
}
