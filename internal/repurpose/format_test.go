package repurpose

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats {
		got, err := ParseFormat(string(f))
		if err != nil {
			t.Errorf("ParseFormat(%q) returned error: %v", f, err)
		}
		if got != f {
			t.Errorf("ParseFormat(%q) = %q", f, got)
		}
	}
}

func TestParseFormatUnknown(t *testing.T) {
	_, err := ParseFormat("tweetstorm")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	// Close variants are still rejected.
	if _, err := ParseFormat("Thread"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected case-sensitive rejection, got %v", err)
	}
	if _, err := ParseFormat(""); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected empty string rejection, got %v", err)
	}
}

func TestParseTone(t *testing.T) {
	if _, err := ParseTone("storytelling"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseTone("sarcastic"); !errors.Is(err, ErrUnknownTone) {
		t.Errorf("expected ErrUnknownTone, got %v", err)
	}
}

func TestParseLength(t *testing.T) {
	if _, err := ParseLength("short"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseLength("xl"); !errors.Is(err, ErrUnknownLength) {
		t.Errorf("expected ErrUnknownLength, got %v", err)
	}
}

func TestPlatformConfigDefaults(t *testing.T) {
	var cfg PlatformConfig

	if got := cfg.ResolveTweetCount(); got != 5 {
		t.Errorf("expected default tweet count 5, got %d", got)
	}
	if got := cfg.ResolveHashtagCount(FormatCaption); got != 15 {
		t.Errorf("expected caption hashtag default 15, got %d", got)
	}
	if got := cfg.ResolveHashtagCount(FormatThread); got != 3 {
		t.Errorf("expected thread hashtag default 3, got %d", got)
	}
	if cfg.ResolveIncludeEmojis(FormatNewsletter) {
		t.Error("expected newsletter emoji default off")
	}
	if cfg.ResolveIncludeEmojis(FormatEmailSequence) {
		t.Error("expected email sequence emoji default off")
	}
	if !cfg.ResolveIncludeEmojis(FormatThread) {
		t.Error("expected thread emoji default on")
	}
}

func TestPlatformConfigOverrides(t *testing.T) {
	// Each field overrides independently.
	cfg := PlatformConfig{TweetCount: intPtr(8)}
	if got := cfg.ResolveTweetCount(); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
	if got := cfg.ResolveHashtagCount(FormatCaption); got != 15 {
		t.Errorf("expected hashtag default untouched, got %d", got)
	}

	cfg = PlatformConfig{IncludeEmojis: boolPtr(true)}
	if !cfg.ResolveIncludeEmojis(FormatNewsletter) {
		t.Error("expected explicit emoji override to beat newsletter default")
	}

	cfg = PlatformConfig{HashtagCount: intPtr(0)}
	if got := cfg.ResolveHashtagCount(FormatCaption); got != 0 {
		t.Errorf("expected explicit zero to override default, got %d", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := FormatEmailSequence.DisplayName(); got != "Email Sequence" {
		t.Errorf("expected 'Email Sequence', got %q", got)
	}
	if got := FormatFeedPost.DisplayName(); got != "Feed Post" {
		t.Errorf("expected 'Feed Post', got %q", got)
	}
}
