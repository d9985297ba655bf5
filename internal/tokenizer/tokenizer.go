package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

type implCounter struct {
	encoder *tiktoken.Tiktoken
}

// New creates a Counter for the given model name. Unknown models fall
// back to the cl100k_base encoding.
func New(model string) (Counter, error) {
	encoder, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoder, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("load %s encoding: %w", fallbackEncoding, err)
		}
	}
	return &implCounter{encoder: encoder}, nil
}

func (c *implCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.encoder.Encode(text, nil, nil))
}
