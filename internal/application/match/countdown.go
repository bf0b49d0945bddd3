package match

import (
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

// countLabels are shown one after another once the ready phase is over
var countLabels = [...]string{"3", "2", "1", "GO"}

// Countdown opens a round. Both players' controls are locked until it runs
// out: a ready phase first, then the 3-2-1-GO count.
type Countdown struct {
	readyMs   float64
	countMs   float64
	elapsedMs float64
}

// NewCountdown creates a countdown. Non-positive phases are skipped.
func NewCountdown(cfg config.RoundConfig) Countdown {
	return Countdown{
		readyMs: max(cfg.ReadyMs, 0),
		countMs: max(cfg.CountMs, 0),
	}
}

func (c *Countdown) totalMs() float64 {
	return c.readyMs + c.countMs*float64(len(countLabels))
}

// Locked reports whether the controls are still locked
func (c *Countdown) Locked() bool {
	return c.elapsedMs < c.totalMs()
}

// Advance moves the countdown on by ms. It reports whether this step
// unlocked the controls.
func (c *Countdown) Advance(ms float64) bool {
	if !c.Locked() {
		return false
	}
	c.elapsedMs += ms
	return !c.Locked()
}

// Label is the text to show: "GET READY", a count, or empty once the round is on
func (c *Countdown) Label() string {
	if !c.Locked() {
		return ""
	}
	if c.elapsedMs < c.readyMs {
		return "GET READY"
	}
	i := int((c.elapsedMs - c.readyMs) / c.countMs)
	return countLabels[min(i, len(countLabels)-1)]
}
