package evaluator

import (
	"context"
	"fmt"
	"strings"

	"github.com/minhtde/lecture-insight/internal/rubric"
)

const maxJustificationRunes = 300

// ConsolidateCriterion asks the model for one short, table-ready
// justification synthesized from all per-block justifications and quotes
// for a criterion. The returned string is cleaned and bounded in length.
func (g *Gemini) ConsolidateCriterion(ctx context.Context, c rubric.Criterion, average float64, justifications, quotes []string) (string, error) {
	justificationsText := "No specific justifications available."
	if len(justifications) > 0 {
		justificationsText = "- " + strings.Join(justifications, "\n- ")
	}

	quotesText := "No relevant quotes available."
	if len(quotes) > 0 {
		capped := quotes
		if len(capped) > 3 {
			capped = capped[:3]
		}
		quotesText = `"` + strings.Join(capped, "\"\n\"") + `"`
	}

	prompt := fmt.Sprintf(`You are an experienced higher-education didactics expert. Write a VERY
SHORT justification (200-250 characters at most) for this rating.

Criterion: %s
Average score: %.1f/5

1. Justifications from the individual blocks:
%s

2. Relevant transcript quotes:
%s

IMPORTANT: 250 characters maximum.
For scores of 3 or lower: one short problem statement plus optionally one
short relevant quote from section 2 above.
For scores above 3: one short positive statement.

Do NOT repeat the criterion name or the score in your answer.`,
		c.Name, average, justificationsText, quotesText)

	text, err := g.generate(ctx, prompt, false)
	if err != nil {
		return "", err
	}

	return truncateRunes(cleanInline(text), maxJustificationRunes), nil
}

// Narrative asks the model for the consolidated strengths/improvements
// section derived from all block evaluations.
func (g *Gemini) Narrative(ctx context.Context, evals []BlockEvaluation) (string, error) {
	var summary strings.Builder
	for _, eval := range evals {
		fmt.Fprintf(&summary, "\n## Block %s (%s)\nOverall score: %.1f\n\n", eval.BlockNumber, eval.TimeRange, eval.OverallScore)
		for _, c := range eval.Criteria {
			fmt.Fprintf(&summary, "- %s: %d/5 - %s\n", c.Name, c.Score, c.Justification)
			if len(c.Quotes) > 0 {
				fmt.Fprintf(&summary, "  > %q\n", c.Quotes[0])
			}
		}
	}

	prompt := fmt.Sprintf(`You are an experienced higher-education didactics expert and performance
coach for lecturers. Based on the following per-block mini analyses of
the whole session, write a consolidated analysis.

%s

Produce:
1. At most 3 strengths of the lecture
2. At most 3 concrete improvement suggestions

Use this markdown format for the output:

## Strengths

1.
2.
3.

## Concrete Improvement Suggestions

1.
2.
3.
`, summary.String())

	text, err := g.generate(ctx, prompt, false)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// cleanInline makes a model answer safe for a one-line table cell:
// newlines and pipes removed, whitespace collapsed.
func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "|", "")
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
