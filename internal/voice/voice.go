// Package voice derives and resolves brand voice profiles.
package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/voxhall/contentengine/internal/database"
	"github.com/voxhall/contentengine/internal/llm"
)

const (
	// minSampleLength is the minimum characters per writing sample.
	minSampleLength = 50

	// maxSamples caps how many writing samples one analysis accepts.
	maxSamples = 10

	analyzeMaxTokens = 2048
)

// Validation errors for voice analysis input.
var (
	ErrNoSamples      = errors.New("at least one writing sample is required")
	ErrTooManySamples = errors.New("maximum 10 writing samples allowed")
	ErrEmptySample    = errors.New("writing sample is empty")
	ErrSampleTooShort = errors.New("writing sample is too short (minimum 50 characters)")
)

const analyzePrompt = `You are a brand voice analyst. Analyze the provided writing samples to identify the writer's unique voice characteristics.

Return ONLY valid JSON with no additional text, markdown formatting, or code blocks. The JSON must match this exact structure:
{
    "tone": "Description of the overall tone (e.g., 'warm and authoritative', 'witty and irreverent')",
    "vocabulary_level": "Description of vocabulary complexity (e.g., 'accessible, avoids jargon', 'technical but clear')",
    "sentence_style": "Description of sentence patterns (e.g., 'short punchy sentences with occasional long flowing ones', 'complex compound sentences')",
    "personality_traits": ["trait1", "trait2", "trait3"],
    "signature_phrases": ["phrase1", "phrase2", "phrase3"],
    "avoid_phrases": ["phrase1", "phrase2"]
}

Analyze deeply:
- What makes this voice distinctive?
- What patterns recur across samples?
- What vocabulary choices stand out?
- What sentence structures are favored?
- Are there signature expressions or turns of phrase?
- What would this voice NEVER say?

Provide 3-5 personality traits, 3-5 signature phrases, and 2-4 phrases to avoid.`

// ValidateSamples checks the 1-10 sample count and per-sample length bounds.
func ValidateSamples(samples []string) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if len(samples) > maxSamples {
		return fmt.Errorf("%d samples: %w", len(samples), ErrTooManySamples)
	}
	for i, sample := range samples {
		if strings.TrimSpace(sample) == "" {
			return fmt.Errorf("sample %d: %w", i+1, ErrEmptySample)
		}
		if len(sample) < minSampleLength {
			return fmt.Errorf("sample %d: %w", i+1, ErrSampleTooShort)
		}
	}
	return nil
}

// Analyze derives style attributes from writing samples with one LLM call.
func Analyze(ctx context.Context, client llm.Client, samples []string) (*database.StyleAttributes, error) {
	if err := ValidateSamples(samples); err != nil {
		return nil, err
	}

	var b strings.Builder
	for i, sample := range samples {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Sample %d ---\n%s", i+1, sample)
	}

	response, err := client.Complete(ctx, analyzePrompt, b.String(), analyzeMaxTokens, 0.3)
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONResponse(response)
	var style database.StyleAttributes
	if err := json.Unmarshal([]byte(cleaned), &style); err != nil {
		return nil, &llm.MalformedResponseError{Raw: response, Err: err}
	}

	return &style, nil
}

// Resolve returns the style for an explicit profile id, else the stored
// default profile, else nil. Precedence: explicit > default > none.
func Resolve(db *database.DB, voiceID string) (*database.StyleAttributes, error) {
	if voiceID != "" {
		return db.GetVoiceStyle(voiceID)
	}
	return db.GetDefaultVoiceStyle()
}
