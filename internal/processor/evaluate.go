package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/minhtde/lecture-insight/internal/evaluator"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

// evaluateAll scores every segment under the configured concurrency
// limit. Results are slotted by segment index so the aggregator always
// consumes them in timeline order regardless of completion order; the
// wait below is the barrier before aggregation.
//
// Default failure policy: any segment failing after retries fails the
// whole report, so averages are never silently skewed. With
// partial_results enabled the failed segment gets the documented neutral
// default instead and is flagged as degraded.
func (p *implProcessor) evaluateAll(ctx context.Context, segments []segmenter.Segment) ([]evaluator.BlockEvaluation, []string, error) {
	if len(segments) == 0 {
		return nil, nil, nil
	}

	results := make([]evaluator.BlockEvaluation, len(segments))
	errs := make([]error, len(segments))

	sem := make(chan struct{}, p.cfg.Analysis.MaxConcurrent)
	var wg sync.WaitGroup

	for i, seg := range segments {
		wg.Add(1)
		go func(i int, seg segmenter.Segment) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p.logger.Info(ctx, "Evaluating block %s (%s - %s, %d tokens)",
				seg.Number, seg.StartLabel, seg.EndLabel, seg.TokenCount)
			results[i], errs[i] = p.evaluator.EvaluateBlock(ctx, seg, p.rubric)
		}(i, seg)
	}
	wg.Wait()

	var degraded []string
	for i, err := range errs {
		if err == nil {
			continue
		}
		if !p.cfg.Analysis.PartialResults {
			return nil, nil, fmt.Errorf("block %s: %w", segments[i].Number, err)
		}
		p.logger.Warn(ctx, "Block %s degraded to neutral default: %v", segments[i].Number, err)
		results[i] = evaluator.Neutral(segments[i], p.rubric)
		degraded = append(degraded, segments[i].Number)
	}

	return results, degraded, nil
}
