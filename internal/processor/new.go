package processor

import (
	"github.com/minhtde/lecture-insight/internal/aggregator"
	"github.com/minhtde/lecture-insight/internal/config"
	"github.com/minhtde/lecture-insight/internal/evaluator"
	"github.com/minhtde/lecture-insight/internal/logger"
	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

type implProcessor struct {
	cfg        *config.Config
	rubric     rubric.Rubric
	segmenter  segmenter.Segmenter
	evaluator  evaluator.Evaluator
	aggregator aggregator.Aggregator
	logger     logger.Logger
}

// New creates a Processor with all collaborators injected.
func New(cfg *config.Config, r rubric.Rubric, seg segmenter.Segmenter, eval evaluator.Evaluator, agg aggregator.Aggregator, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		rubric:     r,
		segmenter:  seg,
		evaluator:  eval,
		aggregator: agg,
		logger:     log,
	}
}
