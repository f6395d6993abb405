package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/aetherium/content-engine/internal/extract"
	"github.com/aetherium/content-engine/internal/types"
)

// mockLLM implements llm.Client with per-test function hooks. It records
// every generation prompt in order.
type mockLLM struct {
	mu      sync.Mutex
	prompts []string

	generateFn func(ctx context.Context, prompt string) (string, error)
	embedFn    func(ctx context.Context, text string) ([]float32, error)
	imageFn    func(ctx context.Context, prompt string) ([]byte, error)
}

func (m *mockLLM) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.generateFn == nil {
		return "", fmt.Errorf("unexpected GenerateContent call")
	}
	return m.generateFn(ctx, prompt)
}

func (m *mockLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedFn == nil {
		return nil, fmt.Errorf("unexpected Embed call")
	}
	return m.embedFn(ctx, text)
}

func (m *mockLLM) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if m.imageFn == nil {
		return nil, fmt.Errorf("unexpected GenerateImage call")
	}
	return m.imageFn(ctx, prompt)
}

func (m *mockLLM) Close() error { return nil }

func (m *mockLLM) recordedPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// mockStore implements Store over in-memory maps.
type mockStore struct {
	mu        sync.Mutex
	personas  map[string]types.Persona
	exemplars []types.Exemplar

	getPersonaErr error
	matchErr      error
}

func newMockStore() *mockStore {
	return &mockStore{personas: make(map[string]types.Persona)}
}

func (s *mockStore) GetPersona(_ context.Context, userID string) (*types.Persona, error) {
	if s.getPersonaErr != nil {
		return nil, s.getPersonaErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.personas[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *mockStore) MatchExemplars(_ context.Context, userID string, _ []float32, _ float64, limit int) ([]types.Exemplar, error) {
	if s.matchErr != nil {
		return nil, s.matchErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []types.Exemplar
	for _, e := range s.exemplars {
		if e.UserID == userID {
			matches = append(matches, e)
		}
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// mockProber implements trends.Prober.
type mockProber struct {
	result string
	called bool
}

func (p *mockProber) Probe(_ context.Context, query string) string {
	p.called = true
	if p.result != "" {
		return p.result
	}
	return "No trending questions found."
}

// mockExtractor implements Extractor without any network access.
type mockExtractor struct {
	article *extract.Article
	err     error
}

func (e *mockExtractor) Extract(_ context.Context, url string) (*extract.Article, error) {
	if e.err != nil {
		return nil, e.err
	}
	a := *e.article
	a.URL = url
	return &a, nil
}
