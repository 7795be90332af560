package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/store"
	_ "github.com/chetansierra/temperature-dashboard-sub001/pkg/testing"
)

func newTestLimiter(budgets map[EndpointClass]int64) (*WindowLimiter, *time.Time) {
	limiter := NewWindowLimiter(store.NewMemoryKV(), time.Minute, budgets)
	now := time.Now().Truncate(time.Minute).Add(10 * time.Second)
	limiter.nowFn = func() time.Time { return now }
	return limiter, &now
}

func TestWindowLimiter_BudgetExhaustion(t *testing.T) {
	limiter, _ := newTestLimiter(map[EndpointClass]int64{ClassIngest: 3})
	ctx := context.Background()
	caller := uuid.NewString()

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(ctx, ClassIngest, caller)
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "request %d should be allowed", i+1)
		assert.EqualValues(t, 3-(i+1), decision.Remaining)
	}

	// the request right after the budget still carries the reset hint
	decision, err := limiter.Allow(ctx, ClassIngest, caller)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.EqualValues(t, 0, decision.Remaining)
	assert.False(t, decision.Reset.Before(limiter.nowFn()))
}

func TestWindowLimiter_WindowReset(t *testing.T) {
	limiter, now := newTestLimiter(map[EndpointClass]int64{ClassIngest: 1})
	ctx := context.Background()
	caller := uuid.NewString()

	decision, err := limiter.Allow(ctx, ClassIngest, caller)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = limiter.Allow(ctx, ClassIngest, caller)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	reset := decision.Reset

	// reset must be no earlier than the window boundary
	assert.False(t, reset.Before(now.Truncate(time.Minute).Add(time.Minute)))

	*now = reset.Add(time.Second)
	decision, err = limiter.Allow(ctx, ClassIngest, caller)
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "new window starts a fresh budget")
}

func TestWindowLimiter_IsolatedBuckets(t *testing.T) {
	limiter, _ := newTestLimiter(map[EndpointClass]int64{ClassIngest: 1, ClassRead: 1})
	ctx := context.Background()
	callerA := uuid.NewString()
	callerB := uuid.NewString()

	decision, err := limiter.Allow(ctx, ClassIngest, callerA)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = limiter.Allow(ctx, ClassIngest, callerA)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)

	// other caller, same class
	decision, err = limiter.Allow(ctx, ClassIngest, callerB)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// same caller, other class
	decision, err = limiter.Allow(ctx, ClassRead, callerA)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestWindowLimiter_UnconfiguredClassUnlimited(t *testing.T) {
	limiter, _ := newTestLimiter(map[EndpointClass]int64{ClassIngest: 1})
	ctx := context.Background()

	for n := 0; n < 10; n++ {
		decision, err := limiter.Allow(ctx, ClassQuery, "caller")
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	}
}

func TestWindowLimiter_Concurrency(t *testing.T) {
	limiter, _ := newTestLimiter(map[EndpointClass]int64{ClassWrite: 50})
	ctx := context.Background()
	caller := uuid.NewString()

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)
	for n := 0; n < 100; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := limiter.Allow(ctx, ClassWrite, caller)
			if err != nil {
				t.Error(err)
				return
			}
			allowed <- decision.Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	// atomic counters: exactly the budget gets through, no lost updates
	assert.Equal(t, 50, count)
}
