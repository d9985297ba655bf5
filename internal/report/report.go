package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/minhtde/lecture-insight/internal/aggregator"
	"github.com/minhtde/lecture-insight/internal/evaluator"
)

// Metadata describes one analysis run.
type Metadata struct {
	RunID          string    `json:"run_id"`
	SegmentCount   int       `json:"segment_count"`
	GeneratedAt    time.Time `json:"generated_at"`
	Model          string    `json:"model"`
	DegradedBlocks []string  `json:"degraded_blocks,omitempty"`
}

// Report is the sealed output of one pipeline run: the aggregate, the
// full per-segment detail and the run metadata. Consumers (markdown,
// JSON, DOCX writers) only read it; nothing mutates a Report after
// Assemble returns it.
type Report struct {
	OverallScore float64                            `json:"overall_score"`
	Criteria     []aggregator.ConsolidatedCriterion `json:"criteria"`
	Narrative    string                             `json:"narrative,omitempty"`
	NoData       bool                               `json:"no_data,omitempty"`
	Blocks       []evaluator.BlockEvaluation        `json:"block_evaluations"`
	Metadata     Metadata                           `json:"metadata"`
}

// Assemble packages an aggregation result with the per-block detail and
// run metadata. Slices are copied so later mutation of the inputs cannot
// leak into the sealed report. No computation happens here beyond
// copying and timestamping.
func Assemble(result aggregator.Result, blocks []evaluator.BlockEvaluation, model string, degraded []string) *Report {
	criteria := make([]aggregator.ConsolidatedCriterion, len(result.Criteria))
	copy(criteria, result.Criteria)

	blocksCopy := make([]evaluator.BlockEvaluation, len(blocks))
	copy(blocksCopy, blocks)

	var degradedCopy []string
	if len(degraded) > 0 {
		degradedCopy = make([]string, len(degraded))
		copy(degradedCopy, degraded)
	}

	return &Report{
		OverallScore: result.OverallScore,
		Criteria:     criteria,
		Narrative:    result.Narrative,
		NoData:       result.NoData,
		Blocks:       blocksCopy,
		Metadata: Metadata{
			RunID:          uuid.NewString(),
			SegmentCount:   len(blocks),
			GeneratedAt:    time.Now().UTC(),
			Model:          model,
			DegradedBlocks: degradedCopy,
		},
	}
}
