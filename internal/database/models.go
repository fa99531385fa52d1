package database

// ContentInput is one stored piece of source content.
type ContentInput struct {
	ID        string
	SourceURL *string
	RawText   string
	Title     *string
	WordCount int
	CreatedAt string
}

// RepurposedOutput is one generated rewrite, one per (run, format).
type RepurposedOutput struct {
	ID             string
	ContentInputID string
	Format         string
	OutputText     string
	CreatedAt      string
}

// HistoryItem is a content input summarized for list views.
type HistoryItem struct {
	ID          string
	Title       *string
	WordCount   int
	FormatCount int
	CreatedAt   string
}

// HistoryPage is one page of history items.
type HistoryPage struct {
	Items    []HistoryItem
	Total    int
	Page     int
	PageSize int
}

// HistoryDetail is a content input with all its outputs.
type HistoryDetail struct {
	Input   ContentInput
	Outputs []RepurposedOutput
}

// StyleAttributes describes a learned brand voice.
type StyleAttributes struct {
	Tone              string   `json:"tone"`
	VocabularyLevel   string   `json:"vocabulary_level"`
	SentenceStyle     string   `json:"sentence_style"`
	PersonalityTraits []string `json:"personality_traits"`
	SignaturePhrases  []string `json:"signature_phrases"`
	AvoidPhrases      []string `json:"avoid_phrases"`
}

// BrandVoiceProfile is a stored brand voice. At most one profile is default.
type BrandVoiceProfile struct {
	ID          string
	Name        string
	Description *string
	Style       StyleAttributes
	IsDefault   bool
	CreatedAt   string
	UpdatedAt   string
}

// UsageInfo reports monthly quota consumption.
type UsageInfo struct {
	Used     int
	Limit    int
	ResetsAt string
}

// Stats contains aggregate database statistics.
type Stats struct {
	ContentInputs int
	Outputs       int
	VoiceProfiles int
	UsageRecords  int
}
