package evaluator

import (
	"fmt"
	"strings"

	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

const blockPromptHeader = `You are an experienced higher-education didactics expert and performance
coach for lecturers. Based on the transcript block below, give precise,
efficient and practical feedback.

Score the block against each criterion from 1 to 5. For any score of 3 or
lower you MUST quote 1-2 complete verbatim sentences from the transcript
as evidence.

Answer ONLY with a JSON object of this exact shape:
{"criteria": {"<criterion_key>": {"score": <1-5>, "justification": "<max 3 sentences>", "quotes": ["<verbatim quote>"]}}}
with one object per criterion key listed below.`

// buildBlockPrompt assembles the evaluation prompt: coaching framing,
// per-level rubric descriptions, then the block content.
func buildBlockPrompt(seg segmenter.Segment, r rubric.Rubric) string {
	var b strings.Builder

	b.WriteString(blockPromptHeader)
	b.WriteString("\n\n## Criteria:\n")

	for _, c := range r.Criteria() {
		fmt.Fprintf(&b, "- %s (key: %s):\n", c.Name, c.Key)
		for level := 5; level >= 1; level-- {
			if desc, ok := c.Levels[level]; ok {
				fmt.Fprintf(&b, "  - %d: %s\n", level, desc)
			}
		}
	}

	fmt.Fprintf(&b, "\n## Block to analyze:\nBlock %s (%s - %s)\n\nTranscript content:\n%s\n",
		seg.Number, seg.StartLabel, seg.EndLabel, seg.Content)

	return b.String()
}
