package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aetherium/content-engine/internal/types"
)

func TestRetrieveExemplarsSkipsAnonymousUsers(t *testing.T) {
	llm := &mockLLM{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			t.Fatal("Embed must not be called for anonymous users")
			return nil, nil
		},
	}
	p := New(Config{LLM: llm, Store: newMockStore()})

	got := p.retrieveExemplars(context.Background(), "", "analysis")
	assert.Empty(t, got)
}

func TestRetrieveExemplarsDegradeOnEmbedFailure(t *testing.T) {
	llm := &mockLLM{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		},
	}
	p := New(Config{LLM: llm, Store: newMockStore()})

	got := p.retrieveExemplars(context.Background(), "user-1", "analysis")
	assert.Empty(t, got)
}

func TestRetrieveExemplarsDegradeOnSearchFailure(t *testing.T) {
	store := newMockStore()
	store.matchErr = errors.New("connection refused")
	llm := &mockLLM{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			return make([]float32, 768), nil
		},
	}
	p := New(Config{LLM: llm, Store: store})

	got := p.retrieveExemplars(context.Background(), "user-1", "analysis")
	assert.Empty(t, got)
}

func TestRetrieveExemplarsBuildsPreambleWithExcerpts(t *testing.T) {
	longContent := strings.Repeat("x", 300)
	store := newMockStore()
	store.exemplars = []types.Exemplar{
		{UserID: "user-1", Platform: "twitter", Content: "Short winning post."},
		{UserID: "user-1", Platform: "linkedin", Content: longContent},
	}
	llm := &mockLLM{
		embedFn: func(_ context.Context, _ string) ([]float32, error) {
			return make([]float32, 768), nil
		},
	}
	p := New(Config{LLM: llm, Store: store})

	got := p.retrieveExemplars(context.Background(), "user-1", "analysis")
	assert.Contains(t, got, "past successful posts")
	assert.Contains(t, got, "- Short winning post....")
	// Long content is cut to a fixed-size excerpt.
	assert.Contains(t, got, "- "+longContent[:exemplarExcerptChars]+"...")
	assert.NotContains(t, got, longContent)
}
