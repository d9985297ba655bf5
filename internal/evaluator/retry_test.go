package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhtde/lecture-insight/internal/logger"
	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

// scriptedEvaluator returns the queued errors in order, then succeeds.
type scriptedEvaluator struct {
	errs  []error
	calls int
}

func (s *scriptedEvaluator) EvaluateBlock(ctx context.Context, seg segmenter.Segment, r rubric.Rubric) (BlockEvaluation, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return BlockEvaluation{}, err
		}
	}
	return Neutral(seg, r), nil
}

func testRubric(t *testing.T) rubric.Rubric {
	t.Helper()
	r, err := rubric.New([]rubric.Criterion{
		{Key: "clarity", Name: "Clarity"},
		{Key: "pace", Name: "Pace"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestWithRetryRecoversFromTransient(t *testing.T) {
	inner := &scriptedEvaluator{errs: []error{
		Transient(errors.New("429 rate limited")),
		Transient(errors.New("503 unavailable")),
	}}
	eval := WithRetry(inner, fastPolicy(3), logger.New("error"))

	got, err := eval.EvaluateBlock(context.Background(), segmenter.Segment{Number: "1"}, testRubric(t))
	if err != nil {
		t.Fatalf("EvaluateBlock() error = %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
	if got.BlockNumber != "1" {
		t.Errorf("BlockNumber = %q, want 1", got.BlockNumber)
	}
}

func TestWithRetryPermanentFailsImmediately(t *testing.T) {
	permanent := errors.New("invalid request")
	inner := &scriptedEvaluator{errs: []error{permanent}}
	eval := WithRetry(inner, fastPolicy(3), logger.New("error"))

	_, err := eval.EvaluateBlock(context.Background(), segmenter.Segment{Number: "2"}, testRubric(t))
	if !errors.Is(err, permanent) {
		t.Fatalf("error = %v, want wrapped permanent error", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on permanent failure)", inner.calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	inner := &scriptedEvaluator{errs: []error{
		Transient(errors.New("quota exceeded")),
		Transient(errors.New("quota exceeded")),
		Transient(errors.New("quota exceeded")),
	}}
	eval := WithRetry(inner, fastPolicy(3), logger.New("error"))

	_, err := eval.EvaluateBlock(context.Background(), segmenter.Segment{Number: "3"}, testRubric(t))
	if err == nil {
		t.Fatal("EvaluateBlock() should fail after exhausting attempts")
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
	if !IsTransient(err) {
		t.Error("exhaustion error should still unwrap to the transient cause")
	}
}

func TestWithRetryRespectsContext(t *testing.T) {
	inner := &scriptedEvaluator{errs: []error{Transient(errors.New("429"))}}
	eval := WithRetry(inner, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Minute}, logger.New("error"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eval.EvaluateBlock(ctx, segmenter.Segment{Number: "4"}, testRubric(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestIsTransient(t *testing.T) {
	if IsTransient(errors.New("plain")) {
		t.Error("plain error should not be transient")
	}
	if !IsTransient(Transient(errors.New("x"))) {
		t.Error("wrapped error should be transient")
	}
	// Wrapping preserves the classification
	wrapped := Transient(errors.New("quota"))
	if !IsTransient(errors.Join(errors.New("outer"), wrapped)) {
		t.Error("transient classification should survive wrapping")
	}
}
