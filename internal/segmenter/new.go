package segmenter

import (
	"github.com/minhtde/lecture-insight/internal/logger"
	"github.com/minhtde/lecture-insight/internal/tokenizer"
)

type implSegmenter struct {
	counter       tokenizer.Counter
	logger        logger.Logger
	blockDuration float64 // seconds
	maxTokens     int
}

// New creates a Segmenter with the given wall-clock window duration
// (minutes) and per-segment token budget.
func New(counter tokenizer.Counter, log logger.Logger, blockDurationMinutes, maxTokensPerBlock int) Segmenter {
	return &implSegmenter{
		counter:       counter,
		logger:        log,
		blockDuration: float64(blockDurationMinutes) * 60,
		maxTokens:     maxTokensPerBlock,
	}
}
