package repurpose

import (
	"strings"
	"testing"
)

func TestBuildSystemPromptDeterministic(t *testing.T) {
	cfg := PlatformConfig{TweetCount: intPtr(7)}
	for _, format := range AllFormats {
		a := BuildSystemPrompt(format, ToneCasual, LengthMedium, cfg)
		b := BuildSystemPrompt(format, ToneCasual, LengthMedium, cfg)
		if a != b {
			t.Errorf("%s: identical inputs produced different prompts", format)
		}
	}
}

func TestBuildSystemPromptCoversAllFormats(t *testing.T) {
	var cfg PlatformConfig
	for _, format := range AllFormats {
		prompt := BuildSystemPrompt(format, ToneProfessional, LengthMedium, cfg)
		if prompt == "" {
			t.Errorf("%s: empty prompt", format)
		}
		if !strings.Contains(prompt, "professional") {
			t.Errorf("%s: tone missing from prompt", format)
		}
	}
}

func TestBuildSystemPromptThreadConfig(t *testing.T) {
	cfg := PlatformConfig{TweetCount: intPtr(9), HashtagCount: intPtr(2)}
	prompt := BuildSystemPrompt(FormatThread, ToneCasual, LengthShort, cfg)

	if !strings.Contains(prompt, "9 posts in the thread") {
		t.Error("expected tweet count in prompt")
	}
	if !strings.Contains(prompt, "Include 2 relevant hashtags") {
		t.Error("expected hashtag count in prompt")
	}
	if !strings.Contains(prompt, "under 280 characters") {
		t.Error("expected per-post character limit in prompt")
	}
}

func TestBuildSystemPromptEmojiClauses(t *testing.T) {
	on := PlatformConfig{IncludeEmojis: boolPtr(true)}
	off := PlatformConfig{IncludeEmojis: boolPtr(false)}

	promptOn := BuildSystemPrompt(FormatFeedPost, ToneCasual, LengthMedium, on)
	if !strings.Contains(promptOn, "Use emojis as bullet point markers") {
		t.Error("expected feed post emoji-on clause")
	}

	promptOff := BuildSystemPrompt(FormatFeedPost, ToneCasual, LengthMedium, off)
	if !strings.Contains(promptOff, "Do NOT use any emojis") {
		t.Error("expected feed post emoji-off clause")
	}

	// Defaults differ per format when no override is set.
	var none PlatformConfig
	newsletter := BuildSystemPrompt(FormatNewsletter, ToneCasual, LengthMedium, none)
	if !strings.Contains(newsletter, "Do not use emojis") {
		t.Error("expected newsletter to default to no emojis")
	}
}

func TestBuildSystemPromptSummaryWordRanges(t *testing.T) {
	var cfg PlatformConfig

	cases := []struct {
		length LengthPreset
		want   string
	}{
		{LengthShort, "50-100 words"},
		{LengthMedium, "100-200 words"},
		{LengthLong, "200-400 words"},
	}
	for _, tc := range cases {
		prompt := BuildSystemPrompt(FormatSummary, ToneEducational, tc.length, cfg)
		if !strings.Contains(prompt, tc.want) {
			t.Errorf("summary %s: expected %q in prompt", tc.length, tc.want)
		}
	}
}

func TestBuildSystemPromptSummaryIgnoresConfig(t *testing.T) {
	plain := BuildSystemPrompt(FormatSummary, ToneCasual, LengthMedium, PlatformConfig{})
	configured := BuildSystemPrompt(FormatSummary, ToneCasual, LengthMedium, PlatformConfig{
		TweetCount:    intPtr(12),
		HashtagCount:  intPtr(30),
		IncludeEmojis: boolPtr(true),
	})
	if plain != configured {
		t.Error("summary prompt should not vary with platform config")
	}
}

func TestBuildSystemPromptNewsletterMarkers(t *testing.T) {
	prompt := BuildSystemPrompt(FormatNewsletter, ToneProfessional, LengthMedium, PlatformConfig{})
	if !strings.Contains(prompt, `"SUBJECT: "`) || !strings.Contains(prompt, `"PREVIEW: "`) {
		t.Error("expected SUBJECT and PREVIEW markers in newsletter prompt")
	}
}

func TestBuildSystemPromptEmailSequenceStructure(t *testing.T) {
	prompt := BuildSystemPrompt(FormatEmailSequence, ToneStorytelling, LengthLong, PlatformConfig{})
	for _, marker := range []string{"EMAIL 1:", "EMAIL 2:", "EMAIL 3:", "SEND TIMING:"} {
		if !strings.Contains(prompt, marker) {
			t.Errorf("expected %q in email sequence prompt", marker)
		}
	}
}
