package pipeline

import (
	"context"
	"encoding/base64"
	"log"
	"strings"

	"github.com/aetherium/content-engine/internal/prompts"
)

// NoImage is the sentinel substituted when image asset generation fails.
// It is distinct from an empty string so clients can tell "generation
// degraded" from "no image requested".
const NoImage = "image-unavailable"

// generateImageAsset runs the two-step image flow for one draft or
// slide: synthesize a visual prompt from the text, then request exactly
// one image sample. The steps are strictly sequential; either failing
// degrades to the NoImage sentinel, never an error.
func (p *Pipeline) generateImageAsset(ctx context.Context, contentText string) string {
	template := prompts.MustGet("pipeline.json", "artist")
	artistPrompt := prompts.Format(template, map[string]string{
		"Text": contentText,
	})

	imagePrompt, err := p.generate(ctx, artistPrompt)
	if err != nil {
		log.Printf("[imaging] prompt synthesis failed, skipping image: %v", err)
		return NoImage
	}
	imagePrompt = strings.TrimSpace(imagePrompt)
	if imagePrompt == "" {
		log.Printf("[imaging] prompt synthesis returned empty prompt, skipping image")
		return NoImage
	}

	callCtx, cancel := p.callCtx(ctx)
	defer cancel()
	imageBytes, err := p.llm.GenerateImage(callCtx, imagePrompt)
	if err != nil {
		log.Printf("[imaging] image generation failed, skipping image: %v", err)
		return NoImage
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageBytes)
}
