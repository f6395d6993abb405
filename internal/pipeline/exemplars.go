package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/aetherium/content-engine/internal/prompts"
)

// retrieveExemplars embeds the analysis text and fetches the user's most
// similar past successful posts. Every failure degrades to "no
// exemplars": the stage never fails the pipeline. The returned string is
// the prompt addition steering the creative stage, or empty when there
// is nothing to learn from.
func (p *Pipeline) retrieveExemplars(ctx context.Context, userID, analysis string) string {
	if userID == "" {
		return ""
	}

	callCtx, cancel := p.callCtx(ctx)
	defer cancel()
	embedding, err := p.llm.Embed(callCtx, analysis)
	if err != nil {
		log.Printf("[exemplars] failed to embed analysis, skipping retrieval: %v", err)
		return ""
	}

	matches, err := p.store.MatchExemplars(ctx, userID, embedding, exemplarThreshold, exemplarCount)
	if err != nil {
		log.Printf("[exemplars] similarity search failed, skipping retrieval: %v", err)
		return ""
	}
	if len(matches) == 0 {
		return ""
	}

	var excerpts []string
	for _, m := range matches {
		content := m.Content
		if len(content) > exemplarExcerptChars {
			content = content[:exemplarExcerptChars]
		}
		excerpts = append(excerpts, "- "+content+"...")
	}

	template := prompts.MustGet("pipeline.json", "examples-preamble")
	return prompts.Format(template, map[string]string{
		"Examples": strings.Join(excerpts, "\n"),
	})
}
