package repurpose

import (
	"context"
	"encoding/json"

	"github.com/voxhall/contentengine/internal/llm"
)

const extractSystemPrompt = `You are a content analysis expert. Your task is to extract the key points from the provided content and return them in a structured JSON format.

You MUST return ONLY valid JSON with no additional text, markdown formatting, or code blocks. The JSON must match this exact structure:
{
    "main_thesis": "The central argument or main point of the content",
    "key_arguments": ["First key argument", "Second key argument", ...],
    "supporting_data": ["First data point or statistic", "Second data point", ...],
    "target_audience": "Description of who this content is for",
    "emotional_tone": "The emotional tone of the content (e.g., inspiring, urgent, informative)",
    "call_to_action": "The desired action for the reader, or null if none"
}

Be thorough but concise. Extract 3-7 key arguments and any supporting data points.`

// KeyPoints is the structured intermediate extracted once per run and shared
// by every adaptation call. Immutable after creation.
type KeyPoints struct {
	MainThesis     string   `json:"main_thesis"`
	KeyArguments   []string `json:"key_arguments"`
	SupportingData []string `json:"supporting_data"`
	TargetAudience string   `json:"target_audience"`
	EmotionalTone  string   `json:"emotional_tone"`
	CallToAction   *string  `json:"call_to_action"`
}

// ExtractKeyPoints turns raw content into KeyPoints with one deterministic
// LLM call (temperature 0). A response that does not parse as the expected
// shape fails with the raw body attached; it is never retried or partially
// accepted.
func ExtractKeyPoints(ctx context.Context, client llm.Client, content string, maxTokens int) (*KeyPoints, error) {
	response, err := client.Complete(ctx, extractSystemPrompt, content, maxTokens, 0.0)
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONResponse(response)
	var kp KeyPoints
	if err := json.Unmarshal([]byte(cleaned), &kp); err != nil {
		return nil, &llm.MalformedResponseError{Raw: response, Err: err}
	}

	return &kp, nil
}
