package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, url string) *OpenAIClient {
	t.Helper()
	client, err := NewOpenAIClient(OpenAIConfig{
		APIKey:     "test-key",
		BaseURL:    url,
		Model:      "test-model",
		MaxRetries: 2,
	})
	require.NoError(t, err)
	return client
}

func embeddingsPayload(vectors map[int][]float64) any {
	data := make([]map[string]any, 0, len(vectors))
	for idx, vec := range vectors {
		data = append(data, map[string]any{"index": idx, "embedding": vec})
	}
	return map[string]any{"data": data}
}

func TestOpenAIEmbedBatchesInOneRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, req.Input)

		_ = json.NewEncoder(w).Encode(embeddingsPayload(map[int][]float64{
			0: {1, 0}, 1: {0, 1}, 2: {1, 1},
		}))
	}))
	defer server.Close()

	vectors, err := newTestOpenAIClient(t, server.URL).Embed(context.Background(), []string{"alpha", "beta", "gamma"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), requests.Load())
	require.Len(t, vectors, 3)
	assert.Equal(t, []float64{1, 0}, vectors[0])
	assert.Equal(t, []float64{1, 1}, vectors[2])
}

func TestOpenAIEmbedRestoresInputOrder(t *testing.T) {
	// Out-of-order data entries map back through the index field.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"index": 1, "embedding": []float64{0, 1}},
			{"index": 0, "embedding": []float64{1, 0}},
		}})
	}))
	defer server.Close()

	vectors, err := newTestOpenAIClient(t, server.URL).Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, vectors[0])
	assert.Equal(t, []float64{0, 1}, vectors[1])
}

func TestOpenAIEmbedEmptyInputSkipsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for empty input")
	}))
	defer server.Close()

	vectors, err := newTestOpenAIClient(t, server.URL).Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestOpenAIEmbedRetriesServerErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(embeddingsPayload(map[int][]float64{0: {1}}))
	}))
	defer server.Close()

	vectors, err := newTestOpenAIClient(t, server.URL).Embed(context.Background(), []string{"alpha"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load())
	require.Len(t, vectors, 1)
}

func TestOpenAIEmbedClientErrorIsTerminal(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		http.Error(w, "bad model", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestOpenAIClient(t, server.URL).Embed(context.Background(), []string{"alpha"})
	require.Error(t, err)
	assert.Equal(t, int32(1), requests.Load(), "client errors never retry")
}

func TestOpenAIEmbedRejectsShortResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(embeddingsPayload(map[int][]float64{0: {1}}))
	}))
	defer server.Close()

	_, err := newTestOpenAIClient(t, server.URL).Embed(context.Background(), []string{"alpha", "beta"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 2")
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(OpenAIConfig{})
	require.Error(t, err)
}

func TestRetryDelayCapped(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, retryDelay(0))
	assert.Equal(t, 400*time.Millisecond, retryDelay(1))
	assert.Equal(t, 5*time.Second, retryDelay(10))
}
