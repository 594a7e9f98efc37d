// Package fetch provides the HTTP client used to retrieve news pages. It
// sends browser-like headers and enforces a minimum delay between
// requests so that harvesting many pages from one run stays polite.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds configuration for the HTTP client.
type Config struct {
	// Timeout per request
	Timeout time.Duration
	// Minimum delay between consecutive requests
	Delay time.Duration
	// User-Agent header sent with every request
	UserAgent string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
		Delay:   2 * time.Second,
	}
}

// Client fetches pages over HTTP with request pacing. It is safe for
// concurrent use; pacing applies across all callers sharing the client.
type Client struct {
	http      *http.Client
	userAgent string
	delay     time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a client from the given configuration. A nil config
// uses the defaults.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: config.Timeout},
		userAgent: userAgent,
		delay:     config.Delay,
	}
}

// Fetch retrieves the raw document at the given URL. Non-200 responses
// are errors.
func (c *Client) Fetch(url string) ([]byte, error) {
	c.pace()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// pace blocks until at least the configured delay has passed since the
// previous request through this client. Each caller reserves its slot
// under the lock, so concurrent callers are spaced out rather than
// released together.
func (c *Client) pace() {
	if c.delay <= 0 {
		return
	}

	c.mu.Lock()
	now := time.Now()
	next := c.lastRequest.Add(c.delay)
	if c.lastRequest.IsZero() || !next.After(now) {
		c.lastRequest = now
		c.mu.Unlock()
		return
	}
	c.lastRequest = next
	c.mu.Unlock()

	time.Sleep(next.Sub(now))
}
