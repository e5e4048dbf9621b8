// Package retry implements the bounded exponential-backoff policy applied
// to remote read operations. The asymmetry between reads and writes is
// deliberate: reads go through ReadPolicy, writes go through WritePolicy,
// which performs exactly one attempt. Choosing a policy per call site makes
// the asymmetry a visible configuration choice.
package retry

import (
	"context"
	"time"

	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxAttempts is the total attempt count for read operations
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the backoff base; the wait before retry i is
	// DefaultBaseDelay * 2^i. No jitter is applied.
	DefaultBaseDelay = 100 * time.Millisecond
)

// Policy describes how many times an operation is attempted and how long
// to wait between attempts.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// ReadPolicy is the default policy for remote reads
var ReadPolicy = Policy{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}

// WritePolicy performs a single attempt. Failed writes surface immediately.
var WritePolicy = Policy{MaxAttempts: 1}

// sleep is swapped out in tests to observe backoff delays
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do executes op under the policy. On failure it waits BaseDelay * 2^i
// before attempt i+1, up to MaxAttempts total attempts. If every attempt
// fails the zero value is returned together with a
// *domain.RetryExhaustedError wrapping the last error. A canceled context
// aborts the backoff wait and fails the operation with the context error.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for i := 0; i < p.MaxAttempts; i++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i < p.MaxAttempts-1 {
			delay := p.BaseDelay << uint(i)
			log.Warn().
				Err(err).
				Int("attempt", i+1).
				Dur("delay", delay).
				Msg("Remote operation failed, retrying")
			if err := sleep(ctx, delay); err != nil {
				return zero, err
			}
		}
	}

	if p.MaxAttempts == 1 {
		// Single-attempt policies report the raw error, not an exhaustion
		return zero, lastErr
	}
	return zero, &domain.RetryExhaustedError{Attempts: p.MaxAttempts, Last: lastErr}
}
