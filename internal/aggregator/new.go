package aggregator

import (
	"github.com/minhtde/lecture-insight/internal/logger"
	"github.com/minhtde/lecture-insight/internal/rubric"
)

type implAggregator struct {
	rubric rubric.Rubric
	synth  Synthesizer
	logger logger.Logger
}

// New creates an Aggregator for the given rubric. synth may be nil; the
// local fallback synthesis is used then, and whenever synth errors.
func New(r rubric.Rubric, synth Synthesizer, log logger.Logger) Aggregator {
	return &implAggregator{
		rubric: r,
		synth:  synth,
		logger: log,
	}
}
