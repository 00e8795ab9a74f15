package watcher

import (
	"context"
	"time"

	"github.com/ritzau/graph-explorer/pkg/logging"
)

// Debouncer batches rapid file system events to avoid re-rendering once per
// partial write
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run accumulates events and flushes after a quiet period, or after maxWait
// when changes keep arriving
func (d *Debouncer) run(ctx context.Context) {
	var (
		timer        *time.Timer
		maxWaitTimer *time.Timer
		accumulated  []string
	)

	flush := func() {
		if len(accumulated) == 0 {
			return
		}

		logging.Debug("flushing accumulated events", "count", len(accumulated))

		d.output <- ChangeEvent{
			Paths:     accumulated,
			Timestamp: time.Now(),
		}
		accumulated = nil

		if timer != nil {
			timer.Stop()
			timer = nil
		}
		if maxWaitTimer != nil {
			maxWaitTimer.Stop()
			maxWaitTimer = nil
		}
	}

	for {
		var quietC, maxWaitC <-chan time.Time
		if timer != nil {
			quietC = timer.C
		}
		if maxWaitTimer != nil {
			maxWaitC = maxWaitTimer.C
		}

		select {
		case <-ctx.Done():
			flush()
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}

			accumulated = append(accumulated, event.Paths...)

			if timer == nil {
				timer = time.NewTimer(d.quietPeriod)
			} else {
				timer.Reset(d.quietPeriod)
			}
			if maxWaitTimer == nil {
				maxWaitTimer = time.NewTimer(d.maxWait)
			}

		case <-quietC:
			timer = nil
			if maxWaitTimer != nil {
				maxWaitTimer.Stop()
				maxWaitTimer = nil
			}
			flush()

		case <-maxWaitC:
			maxWaitTimer = nil
			if timer != nil {
				timer.Stop()
				timer = nil
			}
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
