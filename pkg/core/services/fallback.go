package services

import (
	"context"
	"sync"
	"time"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// FallbackHandle owns one scheduled fallback navigation. Cancel stops the
// task if it has not fired; it is safe to call more than once and after
// firing.
type FallbackHandle struct {
	timer *time.Timer
	once  sync.Once
	fired chan struct{}
}

// Cancel stops the pending navigation. It reports whether the cancellation
// landed before the task fired.
func (h *FallbackHandle) Cancel() bool {
	if h == nil || h.timer == nil {
		return false
	}
	stopped := false
	h.once.Do(func() {
		stopped = h.timer.Stop()
	})
	return stopped
}

// Fired is closed when the fallback navigation has run.
func (h *FallbackHandle) Fired() <-chan struct{} {
	return h.fired
}

// scheduleFallback runs fn after d unless the handle is cancelled first.
func scheduleFallback(d time.Duration, fn func()) *FallbackHandle {
	h := &FallbackHandle{fired: make(chan struct{})}
	h.timer = time.AfterFunc(d, func() {
		fn()
		close(h.fired)
	})
	return h
}

// RedirectExecutor drives the timed app-then-web protocol for one external
// redirect. It owns the only stateful timing logic in the core.
type RedirectExecutor struct {
	// SettleDelay is the brief pause at 100% before navigation is issued,
	// giving the progress UI time to settle.
	SettleDelay time.Duration
	// ProgressSteps is how many increments the 0..100 walk is split into.
	ProgressSteps int
}

// Execute walks progress from 0 to 100, pauses, then issues the primary
// navigation and schedules the web fallback per the plan. The returned
// handle must be cancelled by the caller on any terminal transition that
// precedes the fallback firing. A cancelled context suppresses navigation
// entirely.
func (e *RedirectExecutor) Execute(ctx context.Context, plan domain.RedirectPlan, progress func(int), navigate func(string)) *FallbackHandle {
	steps := e.ProgressSteps
	if steps <= 0 {
		steps = 10
	}
	settle := e.SettleDelay
	if settle <= 0 {
		settle = 200 * time.Millisecond
	}

	// Progress must reach 100 before any navigation is issued.
	interval := settle / time.Duration(steps)
	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if progress != nil {
			progress(i * 100 / steps)
		}
		if i < steps {
			sleepCtx(ctx, interval)
		}
	}
	sleepCtx(ctx, settle)
	if ctx.Err() != nil {
		return nil
	}

	if plan.Direct {
		navigate(plan.FallbackURL)
		return nil
	}

	navigate(plan.PrimaryURI)
	return scheduleFallback(plan.FallbackDelay, func() {
		if ctx.Err() == nil {
			navigate(plan.FallbackURL)
		}
	})
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
