package pipeline

import "strings"

// ExtractStructuredBlock recovers the first embedded {...} block from
// free-form model output: everything from the first opening brace to the
// last closing brace. The result is a candidate only; callers decide
// whether a missing block is fatal (Instagram carousel) or degrades to a
// fallback (optimizer).
func ExtractStructuredBlock(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}
