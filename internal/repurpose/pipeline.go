package repurpose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/voxhall/contentengine/internal/database"
	"github.com/voxhall/contentengine/internal/llm"
	"github.com/voxhall/contentengine/internal/usage"
	"github.com/voxhall/contentengine/internal/voice"
)

// Validation errors, raised before any network call is made.
var (
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrNoFormats    = errors.New("at least one output format must be selected")
)

// Request describes one repurposing run.
type Request struct {
	Content   string
	SourceURL *string
	Title     *string
	Formats   []OutputFormat
	Tone      TonePreset
	Length    LengthPreset
	VoiceID   string // empty resolves to the stored default voice, if any
	Config    PlatformConfig
}

// Response is a completed run: the persisted input id and one output per
// requested format, in request order.
type Response struct {
	ContentInputID string
	Outputs        []database.RepurposedOutput
}

// Pipeline orchestrates one repurposing run:
// validate -> extract -> adapt (parallel) -> refine (parallel, optional) -> finalize.
// A run either produces exactly one output per requested format or fails
// whole; durable writes happen only after every call has succeeded.
type Pipeline struct {
	db               *database.DB
	client           llm.Client
	tracker          *usage.Tracker
	extractMaxTokens int
	adaptMaxTokens   int
}

// New creates a pipeline.
func New(db *database.DB, client llm.Client, tracker *usage.Tracker, extractMaxTokens, adaptMaxTokens int) *Pipeline {
	if extractMaxTokens == 0 {
		extractMaxTokens = 2048
	}
	if adaptMaxTokens == 0 {
		adaptMaxTokens = 2048
	}
	return &Pipeline{
		db:               db,
		client:           client,
		tracker:          tracker,
		extractMaxTokens: extractMaxTokens,
		adaptMaxTokens:   adaptMaxTokens,
	}
}

// Run executes one repurposing run end to end.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Response, error) {
	// Validating: reject bad input before any quota or network cost.
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}
	if len(req.Formats) == 0 {
		return nil, ErrNoFormats
	}

	if err := p.tracker.Check(); err != nil {
		return nil, err
	}

	style, err := voice.Resolve(p.db, req.VoiceID)
	if err != nil {
		return nil, err
	}

	// Extracting: a failure here aborts before any adaptation is attempted.
	log.Printf("extracting key points (%d formats requested)", len(req.Formats))
	keyPoints, err := ExtractKeyPoints(ctx, p.client, req.Content, p.extractMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("extracting key points: %w", err)
	}
	keyPointsJSON, err := json.Marshal(keyPoints)
	if err != nil {
		return nil, fmt.Errorf("encoding key points: %w", err)
	}

	// Adapting: one concurrent call per format. Each goroutine writes only
	// its own slot; result order is the request's format order no matter
	// which call finishes first.
	drafts := make([]string, len(req.Formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range req.Formats {
		i, format := i, format
		g.Go(func() error {
			text, err := Adapt(gctx, p.client, string(keyPointsJSON), format, req.Tone, req.Length, req.Config, p.adaptMaxTokens)
			if err != nil {
				return fmt.Errorf("adapting to %s: %w", format, err)
			}
			drafts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Refining: only when a voice resolved. Same all-or-nothing join.
	finals := drafts
	if style != nil {
		log.Printf("refining %d drafts with brand voice", len(drafts))
		refined := make([]string, len(drafts))
		rg, rctx := errgroup.WithContext(ctx)
		for i, format := range req.Formats {
			i, format := i, format
			rg.Go(func() error {
				text, err := Refine(rctx, p.client, drafts[i], *style, format, p.adaptMaxTokens)
				if err != nil {
					return fmt.Errorf("refining %s: %w", format, err)
				}
				refined[i] = text
				return nil
			})
		}
		if err := rg.Wait(); err != nil {
			return nil, err
		}
		finals = refined
	}

	// Finalizing: the only stage with durable side effects.
	input := &database.ContentInput{
		SourceURL: req.SourceURL,
		RawText:   req.Content,
		Title:     req.Title,
		WordCount: len(strings.Fields(req.Content)),
	}
	outputs := make([]*database.RepurposedOutput, len(req.Formats))
	for i, format := range req.Formats {
		outputs[i] = &database.RepurposedOutput{
			Format:     string(format),
			OutputText: finals[i],
		}
	}
	if err := p.db.RecordRun(input, outputs); err != nil {
		return nil, err
	}
	if err := p.tracker.Record(input.ID, len(outputs)); err != nil {
		return nil, err
	}

	resp := &Response{ContentInputID: input.ID, Outputs: make([]database.RepurposedOutput, len(outputs))}
	for i, out := range outputs {
		resp.Outputs[i] = *out
	}
	log.Printf("run complete: %d outputs for input %s", len(resp.Outputs), input.ID)
	return resp, nil
}
