package core

import "time"

// maxCatchUp bounds how many ticks a single Due call may report after a stall.
const maxCatchUp = 4

// FixedStep helps run simulation updates at a steady ticks-per-second rate
// independent of how often the host loop wakes up.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Due reports how many ticks should run at time now. The first call always
// reports one tick. Long stalls are capped so the sim never spirals.
func (f *FixedStep) Due(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
		return 1
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta < 0 {
		delta = 0
	}
	f.accumulator += delta
	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
		if n == maxCatchUp {
			f.accumulator = 0
			break
		}
	}
	return n
}
