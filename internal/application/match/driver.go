package match

import (
	"context"
	"time"
)

// Ticker is anything advanced once per loop iteration
type Ticker interface {
	Tick(dt float64) error
}

// TickFunc adapts a function to Ticker
type TickFunc func(dt float64) error

// Tick implements Ticker
func (f TickFunc) Tick(dt float64) error { return f(dt) }

// Driver is the headless fixed-rate loop. dt is measured on the wall clock;
// a tick that overruns its slot is followed by the next one immediately and
// long gaps are passed through unclamped.
type Driver struct {
	ticker   Ticker
	interval time.Duration
	maxTicks int
	now      func() time.Time
}

// NewDriver creates a driver targeting framerate ticks per second
func NewDriver(t Ticker, framerate int) *Driver {
	if framerate <= 0 {
		framerate = 60
	}
	return &Driver{
		ticker:   t,
		interval: time.Second / time.Duration(framerate),
		now:      time.Now,
	}
}

// SetMaxTicks stops the loop after n ticks. Zero runs until cancelled.
func (d *Driver) SetMaxTicks(n int) {
	d.maxTicks = n
}

// Interval returns the target time between ticks
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Run ticks until ctx is cancelled, the tick limit is reached or a tick fails
func (d *Driver) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	last := d.now().Add(-d.interval)
	for n := 0; d.maxTicks == 0 || n < d.maxTicks; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := d.now()
		dt := start.Sub(last).Seconds()
		last = start

		if err := d.ticker.Tick(dt); err != nil {
			return err
		}

		wait := d.interval - d.now().Sub(start)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
