package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Detector identifies the language of a text sample.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Config holds endpoint details for the translation service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to a LibreTranslate-compatible HTTP API. Calls run through a
// shared circuit breaker so a degraded service fails fast instead of tying up
// request workers.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a translation client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "translation",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

type detectResult struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Detect returns the dominant language code for the sample text.
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	payload := map[string]string{"q": text}
	if c.cfg.APIKey != "" {
		payload["api_key"] = c.cfg.APIKey
	}

	var results []detectResult
	if err := c.post(ctx, "/detect", payload, &results); err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("translate: empty detection response")
	}
	return results[0].Language, nil
}

type translateResult struct {
	TranslatedText string `json:"translatedText"`
}

// Translate converts text from source to target language.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	payload := map[string]string{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}
	if c.cfg.APIKey != "" {
		payload["api_key"] = c.cfg.APIKey
	}

	var result translateResult
	if err := c.post(ctx, "/translate", payload, &result); err != nil {
		return "", err
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("translate: empty translation response")
	}
	return result.TranslatedText, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("translate: marshal payload: %w", err)
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("translate: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("translate: request: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("translate: service returned %d", resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("translate: read response: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw.([]byte), dest); err != nil {
		return fmt.Errorf("translate: decode response: %w", err)
	}
	return nil
}
