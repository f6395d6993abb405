package types

// Slide is one entry of an Instagram carousel draft.
type Slide struct {
	Slide int    `json:"slide"`
	Text  string `json:"text"`
}

// Optimization carries the per-platform recommendations produced by the
// optimizer stage: a hashtag set, alternative opening hooks, and a
// scheduling-time suggestion.
type Optimization struct {
	Hashtags             []string `json:"hashtags"`
	ABHooks              []string `json:"abHooks"`
	SchedulingSuggestion string   `json:"schedulingSuggestion"`
}

// FallbackOptimization is substituted whenever the optimizer call fails
// or its response contains no parseable block. The strings are fixed so
// clients can distinguish a degraded result from a real one.
func FallbackOptimization() *Optimization {
	return &Optimization{
		Hashtags:             []string{"optimization_failed"},
		ABHooks:              []string{"Could not generate alternative hooks."},
		SchedulingSuggestion: "Could not generate scheduling suggestion.",
	}
}

// InstagramPost is the carousel variant of a platform draft. Optimization
// and image references are optional: their absence never invalidates the
// rest of the result.
type InstagramPost struct {
	ID           string        `json:"id"`
	Slides       []Slide       `json:"slides"`
	Optimization *Optimization `json:"optimization,omitempty"`
	ImageURLs    []string      `json:"imageUrls,omitempty"`
}

// SinglePost is the freeform-text variant used for Twitter/X and LinkedIn.
type SinglePost struct {
	ID           string        `json:"id"`
	Text         string        `json:"text"`
	Optimization *Optimization `json:"optimization,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
}

// Platforms groups the three per-platform results.
type Platforms struct {
	Instagram InstagramPost `json:"instagram"`
	Twitter   SinglePost    `json:"twitter"`
	LinkedIn  SinglePost    `json:"linkedin"`
}

// GenerateResult is the merged response document for one pipeline run.
// AnalysisHTML is the analysis rendered from markdown for direct display.
type GenerateResult struct {
	Analysis     string    `json:"analysis"`
	AnalysisHTML string    `json:"analysisHtml,omitempty"`
	Platforms    Platforms `json:"platforms"`
}
