package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aetherium/content-engine/internal/markdown"
	"github.com/aetherium/content-engine/internal/types"
)

// Run executes the full generation workflow for one request. Control
// flow is linear through persona resolution, extraction, trend probing,
// and analysis; fans out for the three creative drafts; fans out again
// for optimizers and image assets; and joins into one result document.
//
// Only extraction, persona-store connectivity, and the creative stage
// may fail the run. Every other stage degrades to a sentinel.
func (p *Pipeline) Run(ctx context.Context, req Request) (*types.GenerateResult, error) {
	persona, err := p.resolvePersona(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	log.Printf("[pipeline] fetching content from %s", req.URL)
	article, err := p.extractor.Extract(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("article extraction failed: %w", err)
	}

	trendText := p.trends.Probe(ctx, article.FirstHeading)

	log.Printf("[pipeline] running analyst")
	analysis, err := p.runAnalyst(ctx, persona, trendText, article.Text)
	if err != nil {
		return nil, err
	}

	examples := p.retrieveExemplars(ctx, req.UserID, analysis)

	log.Printf("[pipeline] running creative fan-out")
	drafts, err := p.runCreative(ctx, analysis, examples)
	if err != nil {
		return nil, err
	}

	log.Printf("[pipeline] running optimizer and image fan-out")
	post := p.runPostProcessing(ctx, drafts)

	return p.assemble(analysis, drafts, post), nil
}

// resolvePersona loads the stored persona for the user, or the default
// when no user is given or no record exists. A missing record is normal;
// only store connectivity failures abort the request.
func (p *Pipeline) resolvePersona(ctx context.Context, userID string) (types.Persona, error) {
	if userID == "" {
		return types.DefaultPersona(), nil
	}

	persona, err := p.store.GetPersona(ctx, userID)
	if err != nil {
		return types.Persona{}, fmt.Errorf("persona lookup failed: %w", err)
	}
	if persona == nil {
		return types.DefaultPersona(), nil
	}
	return *persona, nil
}

// postResults collects the best-effort outputs of the combined
// optimizer/image batch.
type postResults struct {
	InstagramOpt *types.Optimization
	TwitterOpt   *types.Optimization
	LinkedInOpt  *types.Optimization
	TwitterImg   string
	LinkedInImg  string
	SlideImgs    []string
}

// runPostProcessing runs the three optimizer calls, the two single-draft
// image generations, and one image generation per Instagram slide, all
// concurrently in a single joined batch. No member may fail the request:
// each substitutes its own fallback or sentinel.
func (p *Pipeline) runPostProcessing(ctx context.Context, d *drafts) *postResults {
	slideTexts := make([]string, len(d.Slides))
	for i, slide := range d.Slides {
		slideTexts[i] = slide.Text
	}

	results := &postResults{
		SlideImgs: make([]string, len(d.Slides)),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results.InstagramOpt = p.optimize(gCtx, "Instagram", strings.Join(slideTexts, "\n\n"))
		return nil
	})
	g.Go(func() error {
		results.TwitterOpt = p.optimize(gCtx, "Twitter/X", d.TwitterText)
		return nil
	})
	g.Go(func() error {
		results.LinkedInOpt = p.optimize(gCtx, "LinkedIn", d.LinkedInText)
		return nil
	})
	g.Go(func() error {
		results.TwitterImg = p.generateImageAsset(gCtx, d.TwitterText)
		return nil
	})
	g.Go(func() error {
		results.LinkedInImg = p.generateImageAsset(gCtx, d.LinkedInText)
		return nil
	})
	for i := range slideTexts {
		g.Go(func() error {
			results.SlideImgs[i] = p.generateImageAsset(gCtx, slideTexts[i])
			return nil
		})
	}

	// Members never return errors; Wait only joins the batch.
	_ = g.Wait()
	return results
}

// assemble merges all stage outputs into the response document. Platform
// ids are time-based; uniqueness is only required within one response.
func (p *Pipeline) assemble(analysis string, d *drafts, post *postResults) *types.GenerateResult {
	now := time.Now().UnixMilli()

	analysisHTML, err := markdown.ToHTML(analysis)
	if err != nil {
		log.Printf("[pipeline] failed to render analysis HTML: %v", err)
		analysisHTML = ""
	}

	return &types.GenerateResult{
		Analysis:     analysis,
		AnalysisHTML: analysisHTML,
		Platforms: types.Platforms{
			Instagram: types.InstagramPost{
				ID:           fmt.Sprintf("ig-%d", now),
				Slides:       d.Slides,
				Optimization: post.InstagramOpt,
				ImageURLs:    post.SlideImgs,
			},
			Twitter: types.SinglePost{
				ID:           fmt.Sprintf("tw-%d", now),
				Text:         d.TwitterText,
				Optimization: post.TwitterOpt,
				ImageURL:     post.TwitterImg,
			},
			LinkedIn: types.SinglePost{
				ID:           fmt.Sprintf("li-%d", now),
				Text:         d.LinkedInText,
				Optimization: post.LinkedInOpt,
				ImageURL:     post.LinkedInImg,
			},
		},
	}
}
