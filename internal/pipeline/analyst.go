package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/aetherium/content-engine/internal/prompts"
	"github.com/aetherium/content-engine/internal/types"
)

// runAnalyst produces the structured analysis from persona, trend text,
// and article text. The output is treated as opaque prose downstream;
// the only check on format compliance is that it is non-empty.
func (p *Pipeline) runAnalyst(ctx context.Context, persona types.Persona, trendText, articleText string) (string, error) {
	prompt := buildAnalystPrompt(persona, trendText, articleText)

	analysis, err := p.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analyst generation failed: %w", err)
	}
	if strings.TrimSpace(analysis) == "" {
		return "", fmt.Errorf("analyst returned empty analysis")
	}
	return analysis, nil
}

// buildAnalystPrompt embeds persona fields, trend text, and the first
// maxArticleChars characters of the article.
func buildAnalystPrompt(persona types.Persona, trendText, articleText string) string {
	brandVoice := persona.BrandVoice
	if brandVoice == "" {
		brandVoice = "Professional"
	}
	targetAudience := persona.TargetAudience
	if targetAudience == "" {
		targetAudience = "General Public"
	}

	if len(articleText) > maxArticleChars {
		articleText = articleText[:maxArticleChars]
	}

	template := prompts.MustGet("pipeline.json", "analyst")
	return prompts.Format(template, map[string]string{
		"BrandVoice":     brandVoice,
		"TargetAudience": targetAudience,
		"Trends":         trendText,
		"Article":        articleText,
	})
}
