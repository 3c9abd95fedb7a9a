package metadata

import (
	"context"
	"time"
)

// Clock abstracts wall-clock reads and sleeps so the poll loop is testable
// without real waits.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is cancelled, returning ctx.Err()
	// in the cancelled case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// PollPolicy is the fixed-interval, no-backoff polling schedule for a
// retrieve job.
type PollPolicy struct {
	Interval time.Duration
	Deadline time.Duration
}

// DefaultPollPolicy matches the metadata api guidance: poll every 3s, give
// up after 120s of wall clock.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Interval: 3 * time.Second, Deadline: 120 * time.Second}
}
