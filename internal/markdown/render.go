// Package markdown renders model-produced markdown to HTML for direct
// display by clients.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// ToHTML converts markdown text to HTML.
func ToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
