package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultTickInterval is the countdown cadence used by the widgets.
const DefaultTickInterval = time.Second

// Timer is a cancellable countdown. It only decrements while started and
// stops itself when it reaches zero; reaching zero has no other effect.
type Timer struct {
	mu        sync.Mutex
	duration  int
	remaining int
	interval  time.Duration
	onTick    func(remaining int)
	cancel    context.CancelFunc
	gen       uint64
}

// NewTimer creates a stopped timer holding durationSeconds.
func NewTimer(durationSeconds int, interval time.Duration, onTick func(remaining int)) *Timer {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Timer{
		duration:  durationSeconds,
		remaining: durationSeconds,
		interval:  interval,
		onTick:    onTick,
	}
}

// Tick decrements the remaining time by one second, clamped at zero.
func (t *Timer) Tick() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tickLocked()
}

func (t *Timer) tickLocked() int {
	if t.remaining > 0 {
		t.remaining--
	}
	return t.remaining
}

func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Duration() int {
	return t.duration
}

// Running reports whether a countdown goroutine is armed.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Start arms the countdown. Starting a running or exhausted timer is a no-op,
// so at most one ticking goroutine exists per timer.
func (t *Timer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil || t.remaining == 0 {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.gen++
	go t.run(runCtx, cancel, t.gen)
}

func (t *Timer) run(ctx context.Context, cancel context.CancelFunc, gen uint64) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.release(gen)
			return
		case <-ticker.C:
			t.mu.Lock()
			// Stop cancels under the lock, so no tick lands after Stop returns.
			if ctx.Err() != nil {
				t.mu.Unlock()
				return
			}
			remaining := t.tickLocked()
			t.mu.Unlock()

			if t.onTick != nil {
				t.onTick(remaining)
			}
			if remaining == 0 {
				t.release(gen)
				cancel()
				return
			}
		}
	}
}

// release clears the armed state if it still belongs to this goroutine.
func (t *Timer) release(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen == gen {
		t.cancel = nil
	}
}

// Stop cancels the countdown without touching the remaining time.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Reset stops the countdown and restores the initial duration.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.remaining = t.duration
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
