package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/detect", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Maligayang araw", payload["q"])
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"language": "tl", "confidence": 0.92},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	lang, err := client.Detect(context.Background(), "Maligayang araw")
	require.NoError(t, err)
	assert.Equal(t, "tl", lang)
}

func TestClientTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "tl", payload["source"])
		assert.Equal(t, "en", payload["target"])
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Good day"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	text, err := client.Translate(context.Background(), "Maligayang araw", "tl", "en")
	require.NoError(t, err)
	assert.Equal(t, "Good day", text)
}

func TestClientTranslateServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Translate(context.Background(), "hola", "es", "en")
	require.Error(t, err)
}

func TestClientDetectEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Detect(context.Background(), "text")
	require.Error(t, err)
}
