package aggregator

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/minhtde/lecture-insight/internal/evaluator"
	"github.com/minhtde/lecture-insight/internal/rubric"
)

const maxJustificationRunes = 300

// Aggregate folds N segment evaluations into one Result. Zero
// evaluations produce the defined NoData result, not an error.
func (a *implAggregator) Aggregate(ctx context.Context, evals []evaluator.BlockEvaluation) Result {
	if len(evals) == 0 {
		a.logger.Warn(ctx, "No segment evaluations to aggregate; producing empty report")
		return Result{OverallScore: 0.0, NoData: true}
	}

	collected := a.collect(evals)

	var criteria []ConsolidatedCriterion
	for _, key := range collected.orderedKeys {
		criteria = append(criteria, a.consolidate(ctx, key, collected))
	}

	sum := 0.0
	for _, c := range criteria {
		sum += c.Average
	}

	narrative := ""
	if a.synth != nil {
		text, err := a.synth.Narrative(ctx, evals)
		if err != nil {
			a.logger.Warn(ctx, "Narrative synthesis failed: %v", err)
		} else {
			narrative = text
		}
	}

	return Result{
		OverallScore: round1(sum / float64(len(criteria))),
		Criteria:     criteria,
		Narrative:    narrative,
	}
}

type collection struct {
	// orderedKeys is rubric declaration order, then unknown keys in
	// first-seen order.
	orderedKeys    []string
	scores         map[string][]int
	quotes         map[string][]string
	justifications map[string][]string
	names          map[string]string
}

func (a *implAggregator) collect(evals []evaluator.BlockEvaluation) collection {
	c := collection{
		scores:         make(map[string][]int),
		quotes:         make(map[string][]string),
		justifications: make(map[string][]string),
		names:          make(map[string]string),
	}

	for _, crit := range a.rubric.Criteria() {
		c.orderedKeys = append(c.orderedKeys, crit.Key)
		c.names[crit.Key] = crit.Name
	}

	// Evaluations arrive in segment emission order, so quote order is
	// preserved without re-ranking.
	for _, eval := range evals {
		for _, cs := range eval.Criteria {
			if _, known := c.names[cs.Key]; !known {
				c.orderedKeys = append(c.orderedKeys, cs.Key)
				c.names[cs.Key] = cs.Name
			}
			c.scores[cs.Key] = append(c.scores[cs.Key], cs.Score)
			c.quotes[cs.Key] = append(c.quotes[cs.Key], cs.Quotes...)
			if cs.Justification != "" {
				c.justifications[cs.Key] = append(c.justifications[cs.Key], cs.Justification)
			}
		}
	}

	return c
}

func (a *implAggregator) consolidate(ctx context.Context, key string, c collection) ConsolidatedCriterion {
	scores := c.scores[key]
	if len(scores) == 0 {
		// A rubric criterion no evaluation reported: kept with the
		// neutral default rather than dropped.
		return ConsolidatedCriterion{
			Key:           key,
			Name:          c.names[key],
			Average:       3.0,
			TrafficLight:  rubric.ForScore(3),
			Justification: "No evaluations recorded for this criterion.",
		}
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	average := round1(float64(total) / float64(len(scores)))

	// Problem evidence is prioritized: up to 2 quotes at low averages,
	// at most 1 optional positive quote otherwise.
	allQuotes := c.quotes[key]
	var quotes []string
	if average <= 3 {
		quotes = firstN(allQuotes, 2)
	} else {
		quotes = firstN(allQuotes, 1)
	}

	return ConsolidatedCriterion{
		Key:           key,
		Name:          c.names[key],
		Average:       average,
		TrafficLight:  rubric.ForScore(int(math.Round(average))),
		Justification: a.justify(ctx, key, average, c),
		Quotes:        quotes,
	}
}

func (a *implAggregator) justify(ctx context.Context, key string, average float64, c collection) string {
	justifications := c.justifications[key]
	quotes := c.quotes[key]

	if a.synth != nil {
		crit, ok := a.rubric.Get(key)
		if !ok {
			crit = rubric.Criterion{Key: key, Name: c.names[key]}
		}
		text, err := a.synth.ConsolidateCriterion(ctx, crit, average, justifications, quotes)
		if err != nil {
			a.logger.Warn(ctx, "Justification synthesis failed for %s: %v", key, err)
		} else if text != "" {
			return text
		}
	}

	return fallbackJustification(average, len(c.scores[key]), justifications)
}

// fallbackJustification is the deterministic local synthesis used when
// no Synthesizer is wired or it fails.
func fallbackJustification(average float64, segments int, justifications []string) string {
	if len(justifications) == 0 {
		return fmt.Sprintf("Average score %.1f/5 across %d segments.", average, segments)
	}
	joined := strings.Join(firstN(justifications, 2), " ")
	joined = strings.Join(strings.Fields(strings.ReplaceAll(joined, "|", "")), " ")
	return truncateRunes(joined, maxJustificationRunes)
}

func firstN(items []string, n int) []string {
	if len(items) == 0 {
		return nil
	}
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
