package aggregator

import (
	"context"

	"github.com/minhtde/lecture-insight/internal/evaluator"
	"github.com/minhtde/lecture-insight/internal/rubric"
)

// Aggregator folds segment evaluations into one consolidated result.
type Aggregator interface {
	Aggregate(ctx context.Context, evals []evaluator.BlockEvaluation) Result
}

// Synthesizer phrases the consolidated justification per criterion and
// the overall narrative. It is a delegated text-generation collaborator;
// the aggregator only requires bounded-length strings back and falls
// back to a deterministic local synthesis when it fails.
type Synthesizer interface {
	ConsolidateCriterion(ctx context.Context, c rubric.Criterion, average float64, justifications, quotes []string) (string, error)
	Narrative(ctx context.Context, evals []evaluator.BlockEvaluation) (string, error)
}
