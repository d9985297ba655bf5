package evaluator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/minhtde/lecture-insight/internal/logger"
	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

// RetryPolicy drives retries of transient evaluator failures:
// exponential backoff starting at BaseDelay, capped at MaxDelay, with
// uniform jitter of up to one BaseDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy mirrors the upstream evaluator contract: up to 3
// attempts with 1s base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

func (p RetryPolicy) backoff(retry int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	delay := p.BaseDelay << uint(retry)
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay + time.Duration(rand.Int63n(int64(p.BaseDelay)))
}

type retryingEvaluator struct {
	inner  Evaluator
	policy RetryPolicy
	logger logger.Logger
}

// WithRetry wraps an Evaluator so transient failures are retried per the
// policy. Permanent failures propagate immediately.
func WithRetry(inner Evaluator, policy RetryPolicy, log logger.Logger) Evaluator {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	return &retryingEvaluator{
		inner:  inner,
		policy: policy,
		logger: log,
	}
}

func (r *retryingEvaluator) EvaluateBlock(ctx context.Context, seg segmenter.Segment, rub rubric.Rubric) (BlockEvaluation, error) {
	var lastErr error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := r.policy.backoff(attempt - 2)
			r.logger.Debug(ctx, "Retrying block %s in %s (attempt %d/%d)",
				seg.Number, delay, attempt, r.policy.MaxAttempts)
			select {
			case <-ctx.Done():
				return BlockEvaluation{}, ctx.Err()
			case <-time.After(delay):
			}
		}

		eval, err := r.inner.EvaluateBlock(ctx, seg, rub)
		if err == nil {
			return eval, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return BlockEvaluation{}, fmt.Errorf("evaluate block %s: %w", seg.Number, err)
		}
		r.logger.Warn(ctx, "Transient failure on block %s (attempt %d/%d): %v",
			seg.Number, attempt, r.policy.MaxAttempts, err)
	}

	return BlockEvaluation{}, fmt.Errorf("evaluate block %s: %d attempts exhausted: %w",
		seg.Number, r.policy.MaxAttempts, lastErr)
}
