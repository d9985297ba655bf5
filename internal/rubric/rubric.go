package rubric

import "fmt"

// TrafficLight is the 3-level visual bucket derived from a rounded score.
type TrafficLight string

const (
	Green  TrafficLight = "green"
	Yellow TrafficLight = "yellow"
	Red    TrafficLight = "red"
)

// ForScore maps an integer score to its traffic light:
// 5 and 4 are green, 3 is yellow, 2 and 1 are red.
// Out-of-range scores fall back to yellow.
func ForScore(score int) TrafficLight {
	switch score {
	case 5, 4:
		return Green
	case 3:
		return Yellow
	case 2, 1:
		return Red
	default:
		return Yellow
	}
}

// Criterion is one evaluation criterion with its 5-level scoring guidance.
type Criterion struct {
	Key    string
	Name   string
	Levels map[int]string
}

// Rubric is an ordered, immutable set of criteria. Declaration order
// governs both the evaluator schema and aggregation output order.
type Rubric struct {
	criteria []Criterion
	index    map[string]int
}

// New builds a Rubric from an ordered criterion list. Keys must be
// unique and non-empty.
func New(criteria []Criterion) (Rubric, error) {
	if len(criteria) == 0 {
		return Rubric{}, fmt.Errorf("rubric must declare at least one criterion")
	}

	index := make(map[string]int, len(criteria))
	for i, c := range criteria {
		if c.Key == "" {
			return Rubric{}, fmt.Errorf("criterion %d has empty key", i)
		}
		if _, dup := index[c.Key]; dup {
			return Rubric{}, fmt.Errorf("duplicate criterion key %q", c.Key)
		}
		index[c.Key] = i
	}

	owned := make([]Criterion, len(criteria))
	copy(owned, criteria)

	return Rubric{criteria: owned, index: index}, nil
}

// Criteria returns the criteria in declaration order.
func (r Rubric) Criteria() []Criterion {
	out := make([]Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// Len returns the number of criteria.
func (r Rubric) Len() int {
	return len(r.criteria)
}

// OrderOf returns the declaration position of a key.
func (r Rubric) OrderOf(key string) (int, bool) {
	i, ok := r.index[key]
	return i, ok
}

// Get returns the criterion for a key.
func (r Rubric) Get(key string) (Criterion, bool) {
	i, ok := r.index[key]
	if !ok {
		return Criterion{}, false
	}
	return r.criteria[i], true
}
