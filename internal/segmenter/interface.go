package segmenter

import (
	"context"

	"github.com/minhtde/lecture-insight/internal/transcript"
)

// Segment is one bounded slice of the transcript, ready for evaluation.
// Created once by the Segmenter and never mutated afterwards.
type Segment struct {
	// Number is 1-based and strictly increasing in emission order.
	// Subdivided windows use dotted sub-numbers ("2.1", "2.2").
	Number     string
	StartLabel string
	EndLabel   string
	Content    string
	TokenCount int
	// Oversized marks a segment whose single entry alone exceeds the
	// token budget. Such entries are never split below the entry
	// boundary; the violation is logged, not fatal.
	Oversized bool
}

// Segmenter groups ordered caption entries into duration windows bounded
// by a token budget, or packs raw lines when no timestamps exist.
type Segmenter interface {
	Segment(ctx context.Context, entries []transcript.Entry) []Segment
	SegmentText(ctx context.Context, content string) []Segment
}
