package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("pipeline.json", "analyst")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "ANALYSIS (in 3 parts)")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("pipeline.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Analyze {{.Article}} for {{.TargetAudience}}."
	data := map[string]string{
		"Article":        "the post",
		"TargetAudience": "founders",
	}

	result := Format(template, data)
	assert.Equal(t, "Analyze the post for founders.", result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	result := Format(template, map[string]string{})
	assert.Equal(t, template, result) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("pipeline.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "analyst")
	assert.Contains(t, keys, "creative-instagram")
	assert.Contains(t, keys, "optimizer")
	assert.Contains(t, keys, "artist")
}

func TestPipelinePromptsDeclarePlaceholders(t *testing.T) {
	ClearCache()

	assert.Contains(t, MustGet("pipeline.json", "analyst"), "{{.Trends}}")
	assert.Contains(t, MustGet("pipeline.json", "creative-twitter"), "{{.Analysis}}")
	assert.Contains(t, MustGet("pipeline.json", "optimizer"), "{{.Platform}}")
	assert.Contains(t, MustGet("pipeline.json", "artist"), "{{.Text}}")
}
