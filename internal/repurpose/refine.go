package repurpose

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxhall/contentengine/internal/database"
	"github.com/voxhall/contentengine/internal/llm"
)

const refinePrompt = `You are a brand voice specialist. Your task is to refine the provided draft content to match a specific brand voice while preserving the content's message and format.

Brand Voice Profile:
- Tone: %s
- Vocabulary Level: %s
- Sentence Style: %s
- Personality Traits: %s
- Signature Phrases to incorporate (where natural): %s
- Phrases to avoid: %s

Content Format: %s

Rules:
1. Maintain the original format structure (if it's a thread, keep it as a thread; if a newsletter, keep the newsletter format, etc.)
2. Adjust vocabulary, sentence structure, and tone to match the brand voice
3. Incorporate signature phrases naturally, never forced
4. Remove or replace any phrases from the "avoid" list
5. Keep the core message and key points intact
6. Return ONLY the refined content, no explanations or meta-commentary`

// Refine rewrites one draft to match a brand voice. One creative-temperature
// call; independent per draft.
func Refine(ctx context.Context, client llm.Client, draft string, style database.StyleAttributes, format OutputFormat, maxTokens int) (string, error) {
	system := fmt.Sprintf(refinePrompt,
		style.Tone,
		style.VocabularyLevel,
		style.SentenceStyle,
		strings.Join(style.PersonalityTraits, ", "),
		strings.Join(style.SignaturePhrases, ", "),
		strings.Join(style.AvoidPhrases, ", "),
		format,
	)
	return client.Complete(ctx, system, draft, maxTokens, 0.7)
}
