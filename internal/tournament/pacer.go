package tournament

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// Pacer inserts a cancellable delay between a computer's decision and its
// effect so a watching human can follow along. A zero delay never starts
// a timer.
type Pacer struct {
	clock quartz.Clock
	delay time.Duration
}

// NewPacer creates a pacer waiting delay on clock
func NewPacer(clock quartz.Clock, delay time.Duration) *Pacer {
	return &Pacer{clock: clock, delay: delay}
}

// Delay returns the configured delay
func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	return p.delay
}

// Pace waits for the delay or until ctx is done
func (p *Pacer) Pace(ctx context.Context) error {
	if p == nil || p.delay <= 0 {
		return ctx.Err()
	}

	timer := p.clock.NewTimer(p.delay, "pacer")
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
