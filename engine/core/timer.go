package core

import "time"

// TimerMode selects what happens when a timer reaches its duration
type TimerMode uint8

const (
	// Once saturates at the duration and stays finished
	Once TimerMode = iota
	// Repeating wraps back to zero, keeping the overshoot
	Repeating
)

// Timer tracks elapsed time against a fixed duration.
//
// A Once timer latches Finished after completion. A Repeating timer is only
// Finished on the tick that wrapped, which is the same tick JustFinished
// reports. A zero duration finishes on the first tick with a positive delta
// and reports a fraction of 1.
type Timer struct {
	duration     time.Duration
	elapsed      time.Duration
	mode         TimerMode
	finished     bool
	justFinished bool
	times        int
}

// NewTimer creates a timer. Negative durations are treated as zero.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	if d < 0 {
		d = 0
	}
	return Timer{duration: d, mode: mode}
}

// Tick advances the timer by dt. Non-positive deltas only clear the
// just-finished flag.
func (t *Timer) Tick(dt time.Duration) {
	t.justFinished = false
	t.times = 0
	if dt <= 0 {
		return
	}

	switch t.mode {
	case Once:
		if t.finished {
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
			t.justFinished = true
			t.times = 1
		}
	case Repeating:
		t.finished = false
		t.elapsed += dt
		if t.elapsed < t.duration {
			return
		}
		if t.duration == 0 {
			t.elapsed = 0
			t.times = 1
		} else {
			t.times = int(t.elapsed / t.duration)
			t.elapsed %= t.duration
		}
		t.finished = true
		t.justFinished = true
	}
}

// Reset rewinds the timer to zero and clears its finished state
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
	t.times = 0
}

func (t *Timer) Duration() time.Duration { return t.duration }
func (t *Timer) Elapsed() time.Duration  { return t.elapsed }
func (t *Timer) Mode() TimerMode         { return t.mode }

// Remaining returns the time left until completion
func (t *Timer) Remaining() time.Duration {
	if t.elapsed >= t.duration {
		return 0
	}
	return t.duration - t.elapsed
}

// Fraction returns elapsed/duration in [0,1]
func (t *Timer) Fraction() float64 {
	if t.duration == 0 {
		return 1
	}
	return Clamp01(float64(t.elapsed) / float64(t.duration))
}

// FractionRemaining returns 1 - Fraction
func (t *Timer) FractionRemaining() float64 { return 1 - t.Fraction() }

// Finished reports completion, see the type doc for per-mode semantics
func (t *Timer) Finished() bool { return t.finished }

// JustFinished is true only on the tick that crossed completion
func (t *Timer) JustFinished() bool { return t.justFinished }

// TimesFinishedThisTick returns how many full durations the last tick covered
func (t *Timer) TimesFinishedThisTick() int { return t.times }
