package evaluator

import (
	"sync"

	"github.com/minhtde/lecture-insight/internal/logger"
)

// Gemini scores segments and synthesizes report text through the Gemini
// API, rotating through the supplied API keys on quota errors.
type Gemini struct {
	apiKeys    []string
	model      string
	logger     logger.Logger
	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Gemini-backed evaluator. Wrap it with WithRetry to
// get transient-failure retries.
func NewGemini(apiKeys []string, model string, log logger.Logger) *Gemini {
	return &Gemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}
