package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/score", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "The staff were very helpful", payload["text"])
		_ = json.NewEncoder(w).Encode(map[string]float64{"compound": 0.67})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	score, err := client.Score(context.Background(), "The staff were very helpful")
	require.NoError(t, err)
	assert.InDelta(t, 0.67, score, 1e-9)
}

func TestClientScoreOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"compound": 1.5})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Score(context.Background(), "text")
	require.Error(t, err)
}

func TestClientScoreServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Score(context.Background(), "text")
	require.Error(t, err)
}
