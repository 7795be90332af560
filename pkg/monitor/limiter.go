package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/store"
)

// EndpointClass buckets endpoints by cost so one limiter instance serves the
// whole API instead of ad hoc per-route counters.
type EndpointClass string

const (
	ClassRead   EndpointClass = "read"
	ClassWrite  EndpointClass = "write"
	ClassIngest EndpointClass = "ingest"
	// ClassQuery covers chart/aggregation reads, which fan out to larger
	// range scans and get a lower budget.
	ClassQuery EndpointClass = "query"
)

type Decision struct {
	Allowed   bool
	Remaining int64
	Reset     time.Time
}

// WindowLimiter counts requests per (endpoint class, caller) in fixed
// wall-clock-aligned windows on the shared KV store, so counters survive
// across handler instances and never lose concurrent increments.
type WindowLimiter struct {
	kv      store.KV
	window  time.Duration
	budgets map[EndpointClass]int64

	nowFn func() time.Time
}

func NewWindowLimiter(kv store.KV, window time.Duration, budgets map[EndpointClass]int64) *WindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &WindowLimiter{
		kv:      kv,
		window:  window,
		budgets: budgets,
		nowFn:   time.Now,
	}
}

// Allow counts one request. A zero or missing budget means the class is
// unlimited. The decision always carries Remaining and Reset so responses can
// emit rate-limit headers whether or not the request was rejected.
func (l *WindowLimiter) Allow(ctx context.Context, class EndpointClass, caller string) (Decision, error) {
	now := l.nowFn()
	windowStart := now.Truncate(l.window)
	reset := windowStart.Add(l.window)

	budget := l.budgets[class]
	if budget <= 0 || caller == "" {
		return Decision{Allowed: true, Remaining: -1, Reset: reset}, nil
	}

	key := fmt.Sprintf("rl:%s:%s:%d", class, caller, windowStart.Unix())
	count, err := l.kv.IncrWithTTL(ctx, key, reset.Sub(now))
	if err != nil {
		// a broken counter store must not take the API down; let the request
		// through and report the error for logging
		return Decision{Allowed: true, Remaining: -1, Reset: reset}, err
	}

	remaining := budget - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: count <= budget, Remaining: remaining, Reset: reset}, nil
}

func (l *WindowLimiter) Window() time.Duration { return l.window }
