package aggregator

import (
	"context"
	"fmt"
	"testing"

	"github.com/minhtde/lecture-insight/internal/evaluator"
	"github.com/minhtde/lecture-insight/internal/logger"
	"github.com/minhtde/lecture-insight/internal/rubric"
)

func testRubric(t *testing.T) rubric.Rubric {
	t.Helper()
	r, err := rubric.New([]rubric.Criterion{
		{Key: "clarity", Name: "Clarity"},
		{Key: "pace", Name: "Pace"},
		{Key: "examples", Name: "Examples"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// blockEval builds an evaluation carrying one score (and optional
// quotes) per listed criterion key.
func blockEval(number string, scores map[string]int, quotes map[string][]string) evaluator.BlockEvaluation {
	eval := evaluator.BlockEvaluation{BlockNumber: number, TimeRange: "00:00-00:30"}
	total := 0
	for _, key := range []string{"clarity", "pace", "examples"} {
		score, ok := scores[key]
		if !ok {
			continue
		}
		eval.Criteria = append(eval.Criteria, evaluator.CriterionScore{
			Key:           key,
			Name:          key,
			Score:         score,
			TrafficLight:  rubric.ForScore(score),
			Justification: fmt.Sprintf("block %s says %s is %d", number, key, score),
			Quotes:        quotes[key],
		})
		total += score
	}
	eval.OverallScore = float64(total) / float64(len(eval.Criteria))
	return eval
}

func newTestAggregator(t *testing.T, synth Synthesizer) Aggregator {
	t.Helper()
	return New(testRubric(t), synth, logger.New("error"))
}

func TestAggregateZeroEvaluations(t *testing.T) {
	a := newTestAggregator(t, nil)
	result := a.Aggregate(context.Background(), nil)

	if !result.NoData {
		t.Error("NoData should be set for zero evaluations")
	}
	if result.OverallScore != 0.0 {
		t.Errorf("OverallScore = %v, want 0.0", result.OverallScore)
	}
	if len(result.Criteria) != 0 {
		t.Errorf("Criteria = %v, want empty", result.Criteria)
	}
}

func TestAggregateRoundingDeterminism(t *testing.T) {
	a := newTestAggregator(t, nil)

	evals := []evaluator.BlockEvaluation{
		blockEval("1", map[string]int{"clarity": 5, "pace": 2, "examples": 3}, nil),
		blockEval("2", map[string]int{"clarity": 4, "pace": 3, "examples": 3}, nil),
		blockEval("3", map[string]int{"clarity": 3, "pace": 2, "examples": 3}, nil),
	}

	result := a.Aggregate(context.Background(), evals)

	// clarity [5,4,3] -> 4.0, pace [2,3,2] -> 2.3, examples [3,3,3] -> 3.0
	want := []struct {
		key     string
		average float64
		light   rubric.TrafficLight
	}{
		{"clarity", 4.0, rubric.Green},
		{"pace", 2.3, rubric.Red},
		{"examples", 3.0, rubric.Yellow},
	}

	if len(result.Criteria) != len(want) {
		t.Fatalf("len(Criteria) = %d, want %d", len(result.Criteria), len(want))
	}
	for i, w := range want {
		got := result.Criteria[i]
		if got.Key != w.key {
			t.Errorf("criteria[%d].Key = %q, want %q (rubric order)", i, got.Key, w.key)
		}
		if got.Average != w.average {
			t.Errorf("%s average = %v, want %v", w.key, got.Average, w.average)
		}
		if got.TrafficLight != w.light {
			t.Errorf("%s traffic light = %v, want %v", w.key, got.TrafficLight, w.light)
		}
	}

	// Overall = mean(4.0, 2.3, 3.0) = 3.1
	if result.OverallScore != 3.1 {
		t.Errorf("OverallScore = %v, want 3.1", result.OverallScore)
	}
}

func TestAggregateHalfUpAverage(t *testing.T) {
	a := newTestAggregator(t, nil)

	// pace [2,3] -> 2.5 exactly; traffic light from round(2.5) = 3 -> yellow
	evals := []evaluator.BlockEvaluation{
		blockEval("1", map[string]int{"clarity": 4, "pace": 2, "examples": 4}, nil),
		blockEval("2", map[string]int{"clarity": 4, "pace": 3, "examples": 4}, nil),
	}

	result := a.Aggregate(context.Background(), evals)

	pace := result.Criteria[1]
	if pace.Average != 2.5 {
		t.Errorf("pace average = %v, want 2.5", pace.Average)
	}
	if pace.TrafficLight != rubric.Yellow {
		t.Errorf("pace traffic light = %v, want yellow (ties round up)", pace.TrafficLight)
	}
}

func TestAggregateQuoteSelection(t *testing.T) {
	a := newTestAggregator(t, nil)

	evals := []evaluator.BlockEvaluation{
		blockEval("1",
			map[string]int{"clarity": 5, "pace": 2, "examples": 4},
			map[string][]string{
				"clarity": {"great quote one", "great quote two"},
				"pace":    {"bad quote one"},
			}),
		blockEval("2",
			map[string]int{"clarity": 5, "pace": 2, "examples": 4},
			map[string][]string{
				"pace": {"bad quote two", "bad quote three"},
			}),
	}

	result := a.Aggregate(context.Background(), evals)

	clarity := result.Criteria[0]
	if len(clarity.Quotes) != 1 || clarity.Quotes[0] != "great quote one" {
		t.Errorf("high-score quotes = %v, want at most 1, first collected", clarity.Quotes)
	}

	pace := result.Criteria[1]
	if len(pace.Quotes) != 2 {
		t.Fatalf("low-score quotes = %v, want first 2", pace.Quotes)
	}
	// Order preserved from segment emission order, no re-ranking
	if pace.Quotes[0] != "bad quote one" || pace.Quotes[1] != "bad quote two" {
		t.Errorf("quote order not preserved: %v", pace.Quotes)
	}
}

func TestAggregateCompletenessAndUnknownKeys(t *testing.T) {
	a := newTestAggregator(t, nil)

	eval := blockEval("1", map[string]int{"clarity": 4}, nil)
	// An extra criterion the rubric never declared
	eval.Criteria = append(eval.Criteria, evaluator.CriterionScore{
		Key:   "surprise",
		Name:  "Surprise",
		Score: 5,
	})

	result := a.Aggregate(context.Background(), []evaluator.BlockEvaluation{eval})

	// 3 rubric criteria + 1 unknown, rubric keys first
	if len(result.Criteria) != 4 {
		t.Fatalf("len(Criteria) = %d, want 4", len(result.Criteria))
	}
	wantOrder := []string{"clarity", "pace", "examples", "surprise"}
	for i, key := range wantOrder {
		if result.Criteria[i].Key != key {
			t.Errorf("criteria[%d].Key = %q, want %q", i, result.Criteria[i].Key, key)
		}
	}

	// pace and examples had no scores: neutral default, not dropped
	pace := result.Criteria[1]
	if pace.Average != 3.0 || pace.TrafficLight != rubric.Yellow {
		t.Errorf("unscored criterion = %+v, want neutral 3.0 yellow", pace)
	}
}

func TestAggregateFallbackJustification(t *testing.T) {
	a := newTestAggregator(t, nil)

	evals := []evaluator.BlockEvaluation{
		blockEval("1", map[string]int{"clarity": 4, "pace": 4, "examples": 4}, nil),
	}
	result := a.Aggregate(context.Background(), evals)

	for _, c := range result.Criteria {
		if c.Justification == "" {
			t.Errorf("criterion %s has empty justification", c.Key)
		}
	}
	if result.Narrative != "" {
		t.Errorf("Narrative = %q, want empty without synthesizer", result.Narrative)
	}
}

// recordingSynth returns canned text and records calls.
type recordingSynth struct {
	criterionCalls int
	narrativeCalls int
	fail           bool
}

func (s *recordingSynth) ConsolidateCriterion(ctx context.Context, c rubric.Criterion, average float64, justifications, quotes []string) (string, error) {
	s.criterionCalls++
	if s.fail {
		return "", fmt.Errorf("synth down")
	}
	return "synthesized for " + c.Key, nil
}

func (s *recordingSynth) Narrative(ctx context.Context, evals []evaluator.BlockEvaluation) (string, error) {
	s.narrativeCalls++
	if s.fail {
		return "", fmt.Errorf("synth down")
	}
	return "## Strengths\n\n1. Good pacing.", nil
}

func TestAggregateUsesSynthesizer(t *testing.T) {
	synth := &recordingSynth{}
	a := newTestAggregator(t, synth)

	evals := []evaluator.BlockEvaluation{
		blockEval("1", map[string]int{"clarity": 4, "pace": 4, "examples": 4}, nil),
	}
	result := a.Aggregate(context.Background(), evals)

	if synth.criterionCalls != 3 {
		t.Errorf("criterion synth calls = %d, want 3", synth.criterionCalls)
	}
	if result.Criteria[0].Justification != "synthesized for clarity" {
		t.Errorf("Justification = %q", result.Criteria[0].Justification)
	}
	if result.Narrative == "" {
		t.Error("Narrative should be set")
	}
}

func TestAggregateSynthesizerFailureFallsBack(t *testing.T) {
	synth := &recordingSynth{fail: true}
	a := newTestAggregator(t, synth)

	evals := []evaluator.BlockEvaluation{
		blockEval("1", map[string]int{"clarity": 4, "pace": 4, "examples": 4}, nil),
	}
	result := a.Aggregate(context.Background(), evals)

	for _, c := range result.Criteria {
		if c.Justification == "" {
			t.Errorf("criterion %s lost its justification on synth failure", c.Key)
		}
	}
	if result.Narrative != "" {
		t.Errorf("Narrative = %q, want empty on synth failure", result.Narrative)
	}
}
