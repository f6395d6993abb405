package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImagenClient(srvURL string) *imagenClient {
	c := newImagenClient("test-key", "imagen-3.0-generate-002")
	c.baseURL = srvURL
	return c
}

func TestImagenGenerate(t *testing.T) {
	imageBytes := []byte("fake-png-data")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/imagen-3.0-generate-002:predict", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req imagenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Instances, 1)
		assert.Equal(t, "a lighthouse at dusk", req.Instances[0].Prompt)
		assert.Equal(t, 1, req.Parameters.SampleCount)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]string{
				{"bytesBase64Encoded": base64.StdEncoding.EncodeToString(imageBytes)},
			},
		})
	}))
	defer srv.Close()

	got, err := testImagenClient(srv.URL).Generate(context.Background(), "a lighthouse at dusk")
	require.NoError(t, err)
	assert.Equal(t, imageBytes, got)
}

func TestImagenGenerateErrorOnHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testImagenClient(srv.URL).Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestImagenGenerateErrorOnEmptyPredictions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"predictions": []any{}})
	}))
	defer srv.Close()

	_, err := testImagenClient(srv.URL).Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image data")
}
