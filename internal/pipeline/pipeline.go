// Package pipeline orchestrates the content generation workflow: persona
// resolution, article extraction, trend probing, analysis, exemplar
// retrieval, the creative fan-out, and the optimizer/image fan-out.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/aetherium/content-engine/internal/extract"
	"github.com/aetherium/content-engine/internal/llm"
	"github.com/aetherium/content-engine/internal/trends"
	"github.com/aetherium/content-engine/internal/types"
)

// maxArticleChars caps how much article text reaches the analyst prompt.
// The cut is a plain prefix, no summarization.
const maxArticleChars = 7000

// Exemplar retrieval parameters.
const (
	exemplarThreshold    = 0.75
	exemplarCount        = 2
	exemplarExcerptChars = 200
)

// Store is the persistence surface the pipeline reads from. It never
// writes: persona and exemplar records are only mutated through explicit
// API operations.
type Store interface {
	GetPersona(ctx context.Context, userID string) (*types.Persona, error)
	MatchExemplars(ctx context.Context, userID string, embedding []float32, threshold float64, limit int) ([]types.Exemplar, error)
}

// Extractor reduces a source URL to article text.
type Extractor interface {
	Extract(ctx context.Context, url string) (*extract.Article, error)
}

// Config assembles the pipeline's collaborators. All clients are
// long-lived process-scoped instances shared across requests.
type Config struct {
	LLM       llm.Client
	Store     Store
	Trends    trends.Prober
	Extractor Extractor

	// CallTimeout bounds each outbound call when non-zero. Zero keeps
	// the original unbounded-wait behavior.
	CallTimeout time.Duration
}

// Pipeline runs the generation workflow. It holds no per-request state;
// everything transient lives in the Run call.
type Pipeline struct {
	llm         llm.Client
	store       Store
	trends      trends.Prober
	extractor   Extractor
	callTimeout time.Duration
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		llm:         cfg.LLM,
		store:       cfg.Store,
		trends:      cfg.Trends,
		extractor:   cfg.Extractor,
		callTimeout: cfg.CallTimeout,
	}
}

// Request identifies one pipeline run.
type Request struct {
	URL    string
	UserID string
}

// CreativeError marks a fatal failure in the creative stage.
type CreativeError struct {
	Platform string
	Message  string
	Cause    error
}

func (e *CreativeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CreativeError) Unwrap() error {
	return e.Cause
}

// callCtx derives a context for one outbound call, applying the
// configured timeout when set.
func (p *Pipeline) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout > 0 {
		return context.WithTimeout(ctx, p.callTimeout)
	}
	return context.WithCancel(ctx)
}

// generate issues one text generation call under the call timeout.
func (p *Pipeline) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := p.callCtx(ctx)
	defer cancel()
	return p.llm.GenerateContent(callCtx, prompt)
}
