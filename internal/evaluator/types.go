package evaluator

import (
	"math"

	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

// CriterionScore is one criterion's result for a single segment.
type CriterionScore struct {
	Key           string              `json:"criterion_key"`
	Name          string              `json:"display_name"`
	Score         int                 `json:"score"`
	TrafficLight  rubric.TrafficLight `json:"traffic_light"`
	Justification string              `json:"justification"`
	Quotes        []string            `json:"quotes,omitempty"`
}

// BlockEvaluation is the immutable result of evaluating one segment.
// Criteria appear exactly once per rubric criterion, in rubric order.
type BlockEvaluation struct {
	BlockNumber  string           `json:"block_number"`
	TimeRange    string           `json:"time_range"`
	Criteria     []CriterionScore `json:"criteria"`
	OverallScore float64          `json:"overall_block_score"`
}

// Neutral builds the documented fallback evaluation used in
// partial-results mode when a segment's evaluation fails for good:
// every criterion scores 3 with no quotes.
func Neutral(seg segmenter.Segment, r rubric.Rubric) BlockEvaluation {
	criteria := make([]CriterionScore, 0, r.Len())
	for _, c := range r.Criteria() {
		criteria = append(criteria, CriterionScore{
			Key:           c.Key,
			Name:          c.Name,
			Score:         3,
			TrafficLight:  rubric.ForScore(3),
			Justification: "Evaluation unavailable; neutral default applied.",
		})
	}
	return BlockEvaluation{
		BlockNumber:  seg.Number,
		TimeRange:    seg.StartLabel + "-" + seg.EndLabel,
		Criteria:     criteria,
		OverallScore: 3.0,
	}
}

// clampScore forces a possibly fractional model score into [1,5] and
// rounds to the nearest integer (ties up).
func clampScore(score float64) int {
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return int(math.Round(score))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
