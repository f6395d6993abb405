package trends

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSkipsEmptyQuery(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL))
	assert.Equal(t, NoTrendData, c.Probe(context.Background(), ""))
	assert.Equal(t, NoTrendData, c.Probe(context.Background(), "   "))
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestProbeFormatsQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "remote work", req.Q)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"peopleAlsoAsk": []map[string]string{
				{"question": "Is remote work here to stay?"},
				{"question": "What jobs are fully remote?"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL))
	got := c.Probe(context.Background(), "remote work")
	assert.Equal(t, "Trending questions people are asking:\n- Is remote work here to stay?\n- What jobs are fully remote?", got)
}

func TestProbeSentinelOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL))
	assert.Equal(t, NoTrendData, c.Probe(context.Background(), "remote work"))
}

func TestProbeSentinelOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL))
	assert.Equal(t, NoTrendData, c.Probe(context.Background(), "remote work"))
}

func TestProbeSentinelWhenNoQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"organic": []any{}})
	}))
	defer srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL))
	assert.Equal(t, NoTrendData, c.Probe(context.Background(), "remote work"))
}

func TestProbeCapsQuestionCount(t *testing.T) {
	questions := make([]map[string]string, maxQuestions+4)
	for i := range questions {
		questions[i] = map[string]string{"question": "Q?"}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"peopleAlsoAsk": questions})
	}))
	defer srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL))
	got, err := c.search(context.Background(), "remote work")
	require.NoError(t, err)
	assert.Len(t, got, maxQuestions)
}
