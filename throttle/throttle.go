// ABOUTME: FIFO sliding-window admission throttle for outbound API calls
// ABOUTME: Guarantees at most N operation starts within any rolling window
package throttle

import (
	"context"
	"sync"
	"time"
)

// Throttle admits operations in submission order and guarantees that at
// most capacity operations start within any trailing window. It does
// not retry, time out, or otherwise touch the operations it admits; a
// failed operation has no effect on the admission of later ones.
//
// Admission is decided synchronously, under the mutex, before any
// operation runs, so there is no race between checking capacity and
// consuming it under concurrent submission.
type Throttle struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration

	// starts holds the admission times of the last capacity operations,
	// oldest first.
	starts []time.Time

	now func() time.Time
}

// New returns a throttle admitting at most capacity operation starts
// per rolling window.
func New(capacity int, window time.Duration) *Throttle {
	if capacity < 1 {
		capacity = 1
	}
	return &Throttle{
		capacity: capacity,
		window:   window,
		starts:   make([]time.Time, 0, capacity),
		now:      time.Now,
	}
}

// Do admits op and runs it, returning its error. It blocks until a
// window slot is free or ctx is done.
func (t *Throttle) Do(ctx context.Context, op func() error) error {
	if err := t.admit(ctx); err != nil {
		return err
	}
	return op()
}

func (t *Throttle) admit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := t.now()
		if len(t.starts) < t.capacity {
			t.starts = append(t.starts, now)
			return nil
		}

		oldest := t.starts[0]
		wait := t.window - now.Sub(oldest)
		if wait <= 0 {
			t.starts = append(t.starts[1:], now)
			return nil
		}

		// The mutex stays held while waiting: later submitters queue on
		// it, which keeps admission in submission order.
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Call admits op through t and returns its result. Convenience wrapper
// for operations that produce a value.
func Call[T any](ctx context.Context, t *Throttle, op func() (T, error)) (T, error) {
	var out T
	err := t.Do(ctx, func() error {
		v, err := op()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
