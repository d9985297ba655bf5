package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minhtde/lecture-insight/internal/rubric"
)

var trafficLightEmoji = map[rubric.TrafficLight]string{
	rubric.Green:  "🟢",
	rubric.Yellow: "🟡",
	rubric.Red:    "🔴",
}

// FormatMarkdown renders the report as markdown: overall score first,
// then the scorecard table, the narrative, and per-block detail.
func FormatMarkdown(r *Report) string {
	var b strings.Builder

	b.WriteString("# Lecture Feedback\n\n")
	fmt.Fprintf(&b, "**Overall Score (session average): %.1f / 5**\n\n", r.OverallScore)

	if r.NoData {
		b.WriteString("_No analyzable data: the transcript produced no evaluable segments._\n")
		return b.String()
	}

	b.WriteString("## Scorecard\n\n")
	b.WriteString("| Criterion | Score | Light | Justification |\n")
	b.WriteString("|-----------|-------|-------|---------------|\n")
	for _, c := range r.Criteria {
		fmt.Fprintf(&b, "| %s | %.1f | %s | %s |\n",
			c.Name, c.Average, trafficLightEmoji[c.TrafficLight], c.Justification)
	}
	b.WriteString("\n")

	if r.Narrative != "" {
		b.WriteString(r.Narrative)
		b.WriteString("\n\n")
	}

	b.WriteString("## Block Detail\n\n")
	for _, block := range r.Blocks {
		fmt.Fprintf(&b, "### Block %s (%s)\n\nScore: %.1f/5\n\n", block.BlockNumber, block.TimeRange, block.OverallScore)
		for _, c := range block.Criteria {
			fmt.Fprintf(&b, "- %s: %d/5 %s — %s\n", c.Name, c.Score, trafficLightEmoji[c.TrafficLight], c.Justification)
			for _, q := range c.Quotes {
				fmt.Fprintf(&b, "  > %q\n", q)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\nRun %s | %d segments | %s | generated %s\n",
		r.Metadata.RunID, r.Metadata.SegmentCount, r.Metadata.Model,
		r.Metadata.GeneratedAt.Format("2006-01-02 15:04"))
	if len(r.Metadata.DegradedBlocks) > 0 {
		fmt.Fprintf(&b, "\nDegraded blocks (neutral default applied): %s\n",
			strings.Join(r.Metadata.DegradedBlocks, ", "))
	}

	return b.String()
}

// ToJSON renders the report for machine consumers.
func ToJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
