package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateImageAssetReturnsDataURI(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")
	llm := &mockLLM{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "A minimalist illustration of a lighthouse at dusk.", nil
		},
		imageFn: func(_ context.Context, prompt string) ([]byte, error) {
			assert.Equal(t, "A minimalist illustration of a lighthouse at dusk.", prompt)
			return imageBytes, nil
		},
	}
	p := New(Config{LLM: llm})

	got := p.generateImageAsset(context.Background(), "5 tips for better time management.")
	require.True(t, strings.HasPrefix(got, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, imageBytes, decoded)
}

func TestGenerateImageAssetSentinelOnPromptFailure(t *testing.T) {
	llm := &mockLLM{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	p := New(Config{LLM: llm})

	got := p.generateImageAsset(context.Background(), "draft text")
	assert.Equal(t, NoImage, got)
}

func TestGenerateImageAssetSentinelOnEmptyPrompt(t *testing.T) {
	llm := &mockLLM{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "   \n", nil
		},
	}
	p := New(Config{LLM: llm})

	got := p.generateImageAsset(context.Background(), "draft text")
	assert.Equal(t, NoImage, got)
}

func TestGenerateImageAssetSentinelOnImageFailure(t *testing.T) {
	llm := &mockLLM{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "A visual prompt.", nil
		},
		imageFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, errors.New("safety block")
		},
	}
	p := New(Config{LLM: llm})

	got := p.generateImageAsset(context.Background(), "draft text")
	assert.Equal(t, NoImage, got)
}
