package evaluator

import (
	"strings"
	"testing"

	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

func TestBuildEvaluation(t *testing.T) {
	r := testRubric(t)
	seg := segmenter.Segment{Number: "2", StartLabel: "00:30", EndLabel: "01:00"}

	raw := `{"criteria": {
		"clarity": {"score": 4.6, "justification": "Well structured.", "quotes": []},
		"pace": {"score": 2, "justification": "Too fast in places.", "quotes": ["We need to hurry up now."]}
	}}`

	eval, err := buildEvaluation(seg, r, raw)
	if err != nil {
		t.Fatalf("buildEvaluation() error = %v", err)
	}

	if eval.BlockNumber != "2" || eval.TimeRange != "00:30-01:00" {
		t.Errorf("identity = %s / %s", eval.BlockNumber, eval.TimeRange)
	}
	if len(eval.Criteria) != 2 {
		t.Fatalf("len(Criteria) = %d, want 2", len(eval.Criteria))
	}

	clarity := eval.Criteria[0]
	if clarity.Key != "clarity" || clarity.Score != 5 {
		t.Errorf("clarity = %q score %d, want fractional 4.6 rounded to 5", clarity.Key, clarity.Score)
	}
	if clarity.TrafficLight != rubric.Green {
		t.Errorf("clarity traffic light = %v, want green", clarity.TrafficLight)
	}

	pace := eval.Criteria[1]
	if pace.Score != 2 || pace.TrafficLight != rubric.Red {
		t.Errorf("pace = score %d light %v, want 2 red", pace.Score, pace.TrafficLight)
	}
	if len(pace.Quotes) != 1 {
		t.Errorf("pace quotes = %v", pace.Quotes)
	}

	// (5 + 2) / 2 = 3.5
	if eval.OverallScore != 3.5 {
		t.Errorf("OverallScore = %v, want 3.5", eval.OverallScore)
	}
}

func TestBuildEvaluationMissingCriterion(t *testing.T) {
	r := testRubric(t)
	seg := segmenter.Segment{Number: "1", StartLabel: "00:00", EndLabel: "00:30"}

	// The model forgot "pace": it must be filled with the neutral
	// default, never dropped.
	raw := `{"criteria": {"clarity": {"score": 5, "justification": "Good.", "quotes": []}}}`

	eval, err := buildEvaluation(seg, r, raw)
	if err != nil {
		t.Fatalf("buildEvaluation() error = %v", err)
	}
	if len(eval.Criteria) != 2 {
		t.Fatalf("len(Criteria) = %d, want 2", len(eval.Criteria))
	}
	pace := eval.Criteria[1]
	if pace.Key != "pace" || pace.Score != 3 || pace.TrafficLight != rubric.Yellow {
		t.Errorf("missing criterion filled as %+v, want neutral score 3 yellow", pace)
	}
}

func TestBuildEvaluationClampsScores(t *testing.T) {
	r := testRubric(t)
	seg := segmenter.Segment{Number: "1"}

	raw := `{"criteria": {
		"clarity": {"score": 9, "justification": "x", "quotes": []},
		"pace": {"score": -1, "justification": "y", "quotes": []}
	}}`

	eval, err := buildEvaluation(seg, r, raw)
	if err != nil {
		t.Fatalf("buildEvaluation() error = %v", err)
	}
	if eval.Criteria[0].Score != 5 {
		t.Errorf("score 9 clamped to %d, want 5", eval.Criteria[0].Score)
	}
	if eval.Criteria[1].Score != 1 {
		t.Errorf("score -1 clamped to %d, want 1", eval.Criteria[1].Score)
	}
}

func TestBuildEvaluationMalformedJSONIsTransient(t *testing.T) {
	r := testRubric(t)
	_, err := buildEvaluation(segmenter.Segment{Number: "1"}, r, "not json at all")
	if err == nil {
		t.Fatal("buildEvaluation() should fail on malformed JSON")
	}
	if !IsTransient(err) {
		t.Errorf("parse failure should be transient, got %v", err)
	}
}

func TestBuildEvaluationStripsCodeFences(t *testing.T) {
	r := testRubric(t)
	raw := "```json\n{\"criteria\": {\"clarity\": {\"score\": 4, \"justification\": \"ok\", \"quotes\": []}}}\n```"

	eval, err := buildEvaluation(segmenter.Segment{Number: "1"}, r, raw)
	if err != nil {
		t.Fatalf("buildEvaluation() error = %v", err)
	}
	if eval.Criteria[0].Score != 4 {
		t.Errorf("Score = %d, want 4", eval.Criteria[0].Score)
	}
}

func TestNeutral(t *testing.T) {
	r := testRubric(t)
	seg := segmenter.Segment{Number: "7", StartLabel: "03:00", EndLabel: "03:30"}

	eval := Neutral(seg, r)
	if eval.OverallScore != 3.0 {
		t.Errorf("OverallScore = %v, want 3.0", eval.OverallScore)
	}
	if len(eval.Criteria) != r.Len() {
		t.Fatalf("len(Criteria) = %d, want %d", len(eval.Criteria), r.Len())
	}
	for _, c := range eval.Criteria {
		if c.Score != 3 || c.TrafficLight != rubric.Yellow || len(c.Quotes) != 0 {
			t.Errorf("neutral criterion %q = %+v", c.Key, c)
		}
	}
}

func TestCleanInline(t *testing.T) {
	got := cleanInline("a | b\nwith   spaces\r\nand pipes |")
	if strings.ContainsAny(got, "|\n\r") {
		t.Errorf("cleanInline left forbidden characters: %q", got)
	}
	if got != "a b with spaces and pipes" {
		t.Errorf("cleanInline = %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("short", 10); got != "short" {
		t.Errorf("truncateRunes(short) = %q", got)
	}
	long := strings.Repeat("ä", 400)
	got := truncateRunes(long, 300)
	if runes := []rune(got); len(runes) != 300 {
		t.Errorf("truncated length = %d runes, want 300", len(runes))
	}
}
