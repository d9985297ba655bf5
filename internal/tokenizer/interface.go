package tokenizer

// Counter reports the model-relevant token count of a text span.
// Implementations must be pure and deterministic; the count is used
// only as a budget oracle, never for semantic decisions.
type Counter interface {
	Count(text string) int
}
