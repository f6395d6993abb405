package pipeline

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aetherium/content-engine/internal/llm"
	"github.com/aetherium/content-engine/internal/prompts"
	"github.com/aetherium/content-engine/internal/schemas"
	"github.com/aetherium/content-engine/internal/types"
)

// optimize requests hashtags, alternative hooks, and a scheduling
// suggestion for one platform draft. The stage is always best-effort:
// any generation, extraction, decode, or schema failure is logged and
// replaced with the fixed fallback object.
func (p *Pipeline) optimize(ctx context.Context, platform, text string) *types.Optimization {
	template := prompts.MustGet("pipeline.json", "optimizer")
	prompt := prompts.Format(template, map[string]string{
		"Platform": platform,
		"Post":     text,
	})

	response, err := p.generate(ctx, prompt)
	if err != nil {
		log.Printf("[optimizer] %s generation failed, using fallback: %v", platform, err)
		return types.FallbackOptimization()
	}

	block, ok := ExtractStructuredBlock(llm.CleanJSONBlock(response))
	if !ok {
		log.Printf("[optimizer] %s response contained no JSON block, using fallback", platform)
		return types.FallbackOptimization()
	}

	// A block that fails schema validation takes the same fallback path
	// as one that fails to parse.
	if err := schemas.ValidateOptimization(block); err != nil {
		log.Printf("[optimizer] %s block rejected, using fallback: %v", platform, err)
		return types.FallbackOptimization()
	}

	var opt types.Optimization
	if err := json.Unmarshal([]byte(block), &opt); err != nil {
		log.Printf("[optimizer] %s block failed to decode, using fallback: %v", platform, err)
		return types.FallbackOptimization()
	}
	return &opt
}
