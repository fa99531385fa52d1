package repurpose

import (
	"context"
	"fmt"

	"github.com/voxhall/contentengine/internal/llm"
)

// Adapt turns serialized key points into one draft for the given format.
// One creative-temperature call; calls for different formats are independent.
func Adapt(ctx context.Context, client llm.Client, keyPointsJSON string, format OutputFormat, tone TonePreset, length LengthPreset, cfg PlatformConfig, maxTokens int) (string, error) {
	system := BuildSystemPrompt(format, tone, length, cfg)
	user := fmt.Sprintf(
		"Here are the extracted key points from the original content. Adapt them into the requested format:\n\n%s",
		keyPointsJSON,
	)
	return client.Complete(ctx, system, user, maxTokens, 0.7)
}
