package aggregator

import (
	"github.com/minhtde/lecture-insight/internal/rubric"
)

// ConsolidatedCriterion is one criterion's result folded across all
// evaluated segments.
type ConsolidatedCriterion struct {
	Key           string              `json:"criterion_key"`
	Name          string              `json:"display_name"`
	Average       float64             `json:"average"`
	TrafficLight  rubric.TrafficLight `json:"traffic_light"`
	Justification string              `json:"justification"`
	Quotes        []string            `json:"quotes,omitempty"`
}

// Result is the aggregate over all segment evaluations. Criteria follow
// rubric declaration order; unknown keys sort after all known ones.
type Result struct {
	OverallScore float64                 `json:"overall_score"`
	Criteria     []ConsolidatedCriterion `json:"criteria"`
	Narrative    string                  `json:"narrative,omitempty"`
	// NoData marks the defined empty result produced for zero
	// evaluations instead of an error.
	NoData bool `json:"no_data,omitempty"`
}
