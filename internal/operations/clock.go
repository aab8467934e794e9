package operations

import (
	"context"
	"time"
)

// Clock abstracts time for the bounded attach wait, so tests never sleep
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

// WallClock is the production clock
type WallClock struct{}

// Now implements Clock
func (WallClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock, returning early if the context is cancelled
func (WallClock) Sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
