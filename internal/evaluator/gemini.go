package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
)

// EvaluateBlock scores one segment against the rubric. The model answers
// in JSON; missing criteria are filled with the neutral default score 3
// so every rubric key appears exactly once, in rubric order.
func (g *Gemini) EvaluateBlock(ctx context.Context, seg segmenter.Segment, r rubric.Rubric) (BlockEvaluation, error) {
	prompt := buildBlockPrompt(seg, r)

	raw, err := g.generate(ctx, prompt, true)
	if err != nil {
		return BlockEvaluation{}, err
	}

	return buildEvaluation(seg, r, raw)
}

type criterionPayload struct {
	Score         float64  `json:"score"`
	Justification string   `json:"justification"`
	Quotes        []string `json:"quotes"`
}

type evaluationPayload struct {
	Criteria map[string]criterionPayload `json:"criteria"`
}

// buildEvaluation turns the model's JSON answer into a BlockEvaluation.
// Parse failures are transient: the model occasionally returns malformed
// JSON and a fresh attempt usually succeeds.
func buildEvaluation(seg segmenter.Segment, r rubric.Rubric, raw string) (BlockEvaluation, error) {
	var payload evaluationPayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
		return BlockEvaluation{}, Transient(fmt.Errorf("parse evaluation for block %s: %w", seg.Number, err))
	}

	criteria := make([]CriterionScore, 0, r.Len())
	total := 0

	for _, c := range r.Criteria() {
		result, ok := payload.Criteria[c.Key]

		score := 3
		justification := "No justification provided."
		var quotes []string

		if ok {
			score = clampScore(result.Score)
			if result.Justification != "" {
				justification = result.Justification
			}
			quotes = result.Quotes
		}

		criteria = append(criteria, CriterionScore{
			Key:           c.Key,
			Name:          c.Name,
			Score:         score,
			TrafficLight:  rubric.ForScore(score),
			Justification: justification,
			Quotes:        quotes,
		})
		total += score
	}

	return BlockEvaluation{
		BlockNumber:  seg.Number,
		TimeRange:    seg.StartLabel + "-" + seg.EndLabel,
		Criteria:     criteria,
		OverallScore: round1(float64(total) / float64(r.Len())),
	}, nil
}

// generate sends one prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors; other upstream failures are
// classified transient or permanent by message.
func (g *Gemini) generate(ctx context.Context, prompt string, asJSON bool) (string, error) {
	var genCfg *genai.GenerateContentConfig
	if asJSON {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.keyIndex()]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.keyIndex()+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			if isRetryableMessage(errMsg) {
				return "", Transient(fmt.Errorf("generate content: %w", err))
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			if text != "" {
				return text, nil
			}
		}

		return "", Transient(fmt.Errorf("empty response from Gemini"))
	}

	return "", Transient(fmt.Errorf("all API keys exhausted: %w", lastErr))
}

func (g *Gemini) keyIndex() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey
}

func (g *Gemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

// stripCodeFences removes a surrounding markdown fence if the model
// wrapped its JSON despite the response MIME type.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
