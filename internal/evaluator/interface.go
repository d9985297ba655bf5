package evaluator

import (
	"context"

	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

// Evaluator scores one segment against the configured rubric. It must
// return exactly one CriterionScore per rubric criterion, in rubric
// order. Failures are either transient (see TransientError) or permanent.
type Evaluator interface {
	EvaluateBlock(ctx context.Context, seg segmenter.Segment, r rubric.Rubric) (BlockEvaluation, error)
}
