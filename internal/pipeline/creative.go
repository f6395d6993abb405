package pipeline

import (
	"context"
	"encoding/json"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/aetherium/content-engine/internal/llm"
	"github.com/aetherium/content-engine/internal/prompts"
	"github.com/aetherium/content-engine/internal/types"
)

// drafts holds the creative stage's three platform variants.
type drafts struct {
	Slides       []types.Slide
	TwitterText  string
	LinkedInText string
}

// carouselBlock is the structured block the Instagram generation must embed.
type carouselBlock struct {
	Slides []types.Slide `json:"slides"`
}

// runCreative fans out into three concurrent generations and waits for
// all of them. Any failure here is pipeline-fatal: the three drafts are
// structurally required for the response shape. The Instagram response
// must additionally contain an extractable JSON block with slides.
func (p *Pipeline) runCreative(ctx context.Context, analysis, examples string) (*drafts, error) {
	instagramPrompt := buildCreativePrompt("creative-instagram", analysis, examples)
	twitterPrompt := buildCreativePrompt("creative-twitter", analysis, examples)
	linkedinPrompt := buildCreativePrompt("creative-linkedin", analysis, examples)

	var instagramText string
	result := &drafts{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := p.generate(gCtx, instagramPrompt)
		if err != nil {
			return &CreativeError{Platform: "instagram", Message: "Instagram generation failed", Cause: err}
		}
		instagramText = text
		return nil
	})
	g.Go(func() error {
		text, err := p.generate(gCtx, twitterPrompt)
		if err != nil {
			return &CreativeError{Platform: "twitter", Message: "Twitter generation failed", Cause: err}
		}
		result.TwitterText = text
		return nil
	})
	g.Go(func() error {
		text, err := p.generate(gCtx, linkedinPrompt)
		if err != nil {
			return &CreativeError{Platform: "linkedin", Message: "LinkedIn generation failed", Cause: err}
		}
		result.LinkedInText = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slides, err := parseCarousel(instagramText)
	if err != nil {
		return nil, err
	}
	result.Slides = slides

	log.Printf("[creative] generated drafts: %d slides, twitter %d chars, linkedin %d chars",
		len(result.Slides), len(result.TwitterText), len(result.LinkedInText))
	return result, nil
}

// parseCarousel extracts and decodes the carousel block. A response with
// no extractable block is a hard failure; there is no fallback carousel.
func parseCarousel(text string) ([]types.Slide, error) {
	block, ok := ExtractStructuredBlock(llm.CleanJSONBlock(text))
	if !ok {
		return nil, &CreativeError{
			Platform: "instagram",
			Message:  "Creative agent for Instagram did not return valid JSON.",
		}
	}

	var carousel carouselBlock
	if err := json.Unmarshal([]byte(block), &carousel); err != nil {
		return nil, &CreativeError{
			Platform: "instagram",
			Message:  "Creative agent for Instagram did not return valid JSON.",
			Cause:    err,
		}
	}
	return carousel.Slides, nil
}

func buildCreativePrompt(key, analysis, examples string) string {
	template := prompts.MustGet("pipeline.json", key)
	return prompts.Format(template, map[string]string{
		"Analysis": analysis,
		"Examples": examples,
	})
}
