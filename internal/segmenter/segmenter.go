package segmenter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/minhtde/lecture-insight/internal/transcript"
)

// Segment walks fixed windows [k*D, (k+1)*D) over the transcript timeline
// and materializes a Segment for every window containing at least one
// entry start. Windows whose content exceeds the token budget are
// subdivided greedily at entry boundaries.
func (s *implSegmenter) Segment(ctx context.Context, entries []transcript.Entry) []Segment {
	if len(entries) == 0 {
		return nil
	}

	// The parser sorts on ingest, but tolerate unsorted callers.
	ordered := make([]transcript.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].StartSeconds < ordered[b].StartSeconds
	})

	total := transcript.TotalDuration(ordered)

	var segments []Segment
	number := 1

	for windowStart := 0.0; windowStart < total; windowStart += s.blockDuration {
		windowEnd := windowStart + s.blockDuration

		var windowEntries []transcript.Entry
		for _, e := range ordered {
			if e.StartSeconds >= windowStart && e.StartSeconds < windowEnd {
				windowEntries = append(windowEntries, e)
			}
		}
		// Empty windows are skipped, not emitted
		if len(windowEntries) == 0 {
			continue
		}

		content := renderWindow(windowEntries)
		tokens := s.counter.Count(content)

		if tokens <= s.maxTokens {
			segments = append(segments, Segment{
				Number:     strconv.Itoa(number),
				StartLabel: transcript.SecondsToClock(windowStart),
				EndLabel:   transcript.SecondsToClock(windowEnd),
				Content:    content,
				TokenCount: tokens,
			})
		} else {
			segments = append(segments, s.subdivide(ctx, number, windowEntries)...)
		}
		number++
	}

	return segments
}

// subdivide splits an over-budget window into sub-segments by
// accumulating entries left to right. A single entry is never split
// mid-entry: if it alone exceeds the budget it is emitted whole and
// flagged Oversized.
func (s *implSegmenter) subdivide(ctx context.Context, parent int, entries []transcript.Entry) []Segment {
	var segments []Segment
	sub := 1
	var current []transcript.Entry
	currentTokens := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		parts := make([]string, 0, len(current))
		for _, e := range current {
			parts = append(parts, renderEntry(e))
		}
		content := strings.Join(parts, " ")
		tokens := s.counter.Count(content)
		seg := Segment{
			Number:     fmt.Sprintf("%d.%d", parent, sub),
			StartLabel: fmt.Sprintf("%s (part %d)", transcript.SecondsToClock(current[0].StartSeconds), sub),
			EndLabel:   fmt.Sprintf("%s (part %d)", transcript.SecondsToClock(current[len(current)-1].EndSeconds), sub),
			Content:    content,
			TokenCount: tokens,
			Oversized:  tokens > s.maxTokens,
		}
		if seg.Oversized {
			s.logger.Warn(ctx, "Segment %s exceeds token budget (%d > %d); single entry kept whole",
				seg.Number, tokens, s.maxTokens)
		}
		segments = append(segments, seg)
		sub++
		current = nil
		currentTokens = 0
	}

	for _, e := range entries {
		entryTokens := s.counter.Count(renderEntry(e))
		if currentTokens+entryTokens > s.maxTokens && len(current) > 0 {
			flush()
		}
		current = append(current, e)
		currentTokens += entryTokens
	}
	flush()

	return segments
}

// renderWindow concatenates entry texts in chronological order. A fresh
// "Speaker X:" prefix is emitted only when the speaker changes;
// consecutive entries from the same speaker keep the bare text.
func renderWindow(entries []transcript.Entry) string {
	parts := make([]string, 0, len(entries))
	currentSpeaker := ""

	for _, e := range entries {
		if e.Speaker != "" && e.Speaker != currentSpeaker {
			currentSpeaker = e.Speaker
			parts = append(parts, fmt.Sprintf("Speaker %s: %s", e.Speaker, e.Text))
		} else {
			parts = append(parts, e.Text)
		}
	}

	return strings.Join(parts, " ")
}

func renderEntry(e transcript.Entry) string {
	if e.Speaker != "" {
		return fmt.Sprintf("Speaker %s: %s", e.Speaker, e.Text)
	}
	return e.Text
}
