package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, number, message string) error
}

// Config holds gateway credentials and tuning.
type Config struct {
	GatewayURL string
	APIKey     string
	SenderName string
	Timeout    time.Duration
}

// Client talks to a Semaphore-compatible SMS gateway.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds an SMS gateway client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Send posts a single message to the gateway. The gateway queues delivery;
// a 2xx response only acknowledges acceptance.
func (c *Client) Send(ctx context.Context, number, message string) error {
	if number == "" {
		return fmt.Errorf("sms: recipient number required")
	}
	if message == "" {
		return fmt.Errorf("sms: message body required")
	}

	form := url.Values{}
	form.Set("apikey", c.cfg.APIKey)
	form.Set("number", number)
	form.Set("message", message)
	form.Set("sendername", c.cfg.SenderName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms: send: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms: gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
