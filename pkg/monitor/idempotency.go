package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/store"
)

// ErrInFlight means another request holds the same idempotency key right now.
// The caller is told to retry rather than blocked behind the first writer.
var ErrInFlight = errors.New("request with this idempotency key is in flight")

const inFlightTTL = time.Minute

// CachedResponse is the HTTP outcome replayed verbatim on a retry, success
// or structured failure alike.
type CachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

// IdempotencyCache maps a caller-chosen key to a previously computed
// response. Retention is bounded: a retry arriving after eviction re-executes
// the insert, an accepted tradeoff of the TTL design.
type IdempotencyCache struct {
	kv  store.KV
	ttl time.Duration
}

func NewIdempotencyCache(kv store.KV, ttl time.Duration) *IdempotencyCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyCache{kv: kv, ttl: ttl}
}

func responseKey(key string) string { return "idem:resp:" + key }
func inFlightKey(key string) string { return "idem:lock:" + key }

// Begin claims the key. It returns the cached response on a replay, nil when
// this caller won the claim and must execute, or ErrInFlight when a
// concurrent request with the same key is still executing.
func (c *IdempotencyCache) Begin(ctx context.Context, key string) (*CachedResponse, error) {
	if cached, err := c.lookup(ctx, key); err != nil {
		return nil, err
	} else if cached != nil {
		return cached, nil
	}

	won, err := c.kv.SetNX(ctx, inFlightKey(key), "1", inFlightTTL)
	if err != nil {
		return nil, err
	}
	if !won {
		// the first writer may have just committed; prefer its response over
		// a retry hint
		if cached, err := c.lookup(ctx, key); err != nil {
			return nil, err
		} else if cached != nil {
			return cached, nil
		}
		return nil, ErrInFlight
	}
	return nil, nil
}

// Commit stores the computed response under the key and releases the claim.
func (c *IdempotencyCache) Commit(ctx context.Context, key string, resp *CachedResponse) error {
	encoded, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := c.kv.Set(ctx, responseKey(key), string(encoded), c.ttl); err != nil {
		return err
	}
	return c.kv.Delete(ctx, inFlightKey(key))
}

// Abort releases the claim without caching anything, so a retry re-executes.
// Used when the request never reached the side-effecting stage.
func (c *IdempotencyCache) Abort(ctx context.Context, key string) error {
	return c.kv.Delete(ctx, inFlightKey(key))
}

func (c *IdempotencyCache) lookup(ctx context.Context, key string) (*CachedResponse, error) {
	val, err := c.kv.Get(ctx, responseKey(key))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, nil
		}
		return nil, err
	}
	var cached CachedResponse
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, fmt.Errorf("corrupt idempotency record for key %q: %w", key, err)
	}
	return &cached, nil
}
