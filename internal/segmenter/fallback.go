package segmenter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SegmentText is the content-only fallback for transcripts without
// usable timestamps: raw lines are packed greedily into chunks under the
// token budget and labeled positionally instead of by wall clock.
func (s *implSegmenter) SegmentText(ctx context.Context, content string) []Segment {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var segments []Segment
	number := 1
	var current []string
	currentTokens := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunk := strings.Join(current, "\n")
		tokens := s.counter.Count(chunk)
		seg := Segment{
			Number:     strconv.Itoa(number),
			StartLabel: fmt.Sprintf("Block %d Start", number),
			EndLabel:   fmt.Sprintf("Block %d End", number),
			Content:    chunk,
			TokenCount: tokens,
			Oversized:  tokens > s.maxTokens,
		}
		if seg.Oversized {
			s.logger.Warn(ctx, "Segment %s exceeds token budget (%d > %d); single line kept whole",
				seg.Number, tokens, s.maxTokens)
		}
		segments = append(segments, seg)
		number++
		current = nil
		currentTokens = 0
	}

	for _, line := range lines {
		lineTokens := s.counter.Count(line)
		if currentTokens+lineTokens > s.maxTokens && len(current) > 0 {
			flush()
		}
		current = append(current, line)
		currentTokens += lineTokens
	}
	flush()

	return segments
}
