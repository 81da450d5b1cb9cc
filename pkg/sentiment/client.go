package sentiment

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

// Scorer produces a compound polarity score in [-1, 1] for English text.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Config holds endpoint details for the sentiment service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls a VADER-style sentiment scoring HTTP service.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a sentiment scoring client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sentiment",
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

type scoreResult struct {
	Compound float64 `json:"compound"`
}

// Score returns the compound polarity of the text.
func (c *Client) Score(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return 0, fmt.Errorf("sentiment: marshal payload: %w", err)
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/score", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("sentiment: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("sentiment: request: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("sentiment: service returned %d", resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if err != nil {
			return nil, fmt.Errorf("sentiment: read response: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return 0, err
	}

	var result scoreResult
	if err := json.Unmarshal(raw.([]byte), &result); err != nil {
		return 0, fmt.Errorf("sentiment: decode response: %w", err)
	}
	if result.Compound < -1 || result.Compound > 1 {
		return 0, fmt.Errorf("sentiment: compound score %f out of range", result.Compound)
	}
	return result.Compound, nil
}
