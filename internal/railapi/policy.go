package railapi

import (
	"context"
	"time"
)

// Policy is the retry schedule for one call site: fixed delay between
// attempts, optionally capped. MaxRetries 0 means the loop runs until the
// attempt finishes or the context ends.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
}

// Run calls attempt until it reports done or fails. A (false, nil) result
// means "not yet": Run sleeps Delay and tries again, bounded by MaxRetries.
func (p Policy) Run(ctx context.Context, attempt func() (bool, error)) error {
	for tries := 1; ; tries++ {
		done, err := attempt()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if p.MaxRetries > 0 && tries >= p.MaxRetries {
			return ErrRetriesExhausted
		}
		if err := Sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
}
