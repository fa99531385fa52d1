package repurpose

import (
	"errors"
	"fmt"
)

// OutputFormat is one of the supported rewrite targets.
type OutputFormat string

const (
	FormatThread        OutputFormat = "thread"
	FormatFeedPost      OutputFormat = "feed-post"
	FormatCaption       OutputFormat = "caption"
	FormatNewsletter    OutputFormat = "newsletter"
	FormatEmailSequence OutputFormat = "email-sequence"
	FormatSummary       OutputFormat = "summary"
)

// AllFormats lists every supported format in canonical order.
var AllFormats = []OutputFormat{
	FormatThread,
	FormatFeedPost,
	FormatCaption,
	FormatNewsletter,
	FormatEmailSequence,
	FormatSummary,
}

// ErrUnknownFormat indicates a format name outside the closed set.
// Wrap with the name: fmt.Errorf("format %q: %w", s, ErrUnknownFormat)
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(s string) (OutputFormat, error) {
	for _, f := range AllFormats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("format %q: %w", s, ErrUnknownFormat)
}

// DisplayName returns a human-readable label for a format.
func (f OutputFormat) DisplayName() string {
	switch f {
	case FormatThread:
		return "Thread"
	case FormatFeedPost:
		return "Feed Post"
	case FormatCaption:
		return "Caption"
	case FormatNewsletter:
		return "Newsletter"
	case FormatEmailSequence:
		return "Email Sequence"
	case FormatSummary:
		return "Summary"
	}
	return string(f)
}

// TonePreset is a cross-cutting tone modifier applied to every format in a run.
type TonePreset string

const (
	ToneCasual       TonePreset = "casual"
	ToneProfessional TonePreset = "professional"
	ToneStorytelling TonePreset = "storytelling"
	ToneEducational  TonePreset = "educational"
)

// ErrUnknownTone indicates a tone name outside the closed set.
var ErrUnknownTone = errors.New("unknown tone preset")

// ParseTone validates a tone name.
func ParseTone(s string) (TonePreset, error) {
	switch TonePreset(s) {
	case ToneCasual, ToneProfessional, ToneStorytelling, ToneEducational:
		return TonePreset(s), nil
	}
	return "", fmt.Errorf("tone %q: %w", s, ErrUnknownTone)
}

// LengthPreset is a cross-cutting length modifier applied to every format in a run.
type LengthPreset string

const (
	LengthShort  LengthPreset = "short"
	LengthMedium LengthPreset = "medium"
	LengthLong   LengthPreset = "long"
)

// ErrUnknownLength indicates a length name outside the closed set.
var ErrUnknownLength = errors.New("unknown length preset")

// ParseLength validates a length name.
func ParseLength(s string) (LengthPreset, error) {
	switch LengthPreset(s) {
	case LengthShort, LengthMedium, LengthLong:
		return LengthPreset(s), nil
	}
	return "", fmt.Errorf("length %q: %w", s, ErrUnknownLength)
}

// PlatformConfig holds per-run overrides. Every field is independently
// optional; nil means "use the consuming format's default".
type PlatformConfig struct {
	TweetCount    *int
	HashtagCount  *int
	IncludeEmojis *bool
}

// ResolveTweetCount returns the effective tweet count for a thread.
func (c PlatformConfig) ResolveTweetCount() int {
	if c.TweetCount != nil {
		return *c.TweetCount
	}
	return 5
}

// ResolveHashtagCount returns the effective hashtag count for a format.
// Caption-style formats default higher.
func (c PlatformConfig) ResolveHashtagCount(format OutputFormat) int {
	if c.HashtagCount != nil {
		return *c.HashtagCount
	}
	if format == FormatCaption {
		return 15
	}
	return 3
}

// ResolveIncludeEmojis returns the effective emoji setting for a format.
// Email-style formats default to no emojis.
func (c PlatformConfig) ResolveIncludeEmojis(format OutputFormat) bool {
	if c.IncludeEmojis != nil {
		return *c.IncludeEmojis
	}
	switch format {
	case FormatNewsletter, FormatEmailSequence:
		return false
	}
	return true
}
