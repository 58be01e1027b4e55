package presigned

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client checks that issued URLs are actually accepted by the storage side
type Client struct {
	httpClient *http.Client
}

// ClientOption is a functional option for configuring a Client
type ClientOption func(*Client)

// NewClient creates a new presigned URL client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// CheckResult describes the storage side's answer to a signed URL
type CheckResult struct {
	StatusCode  int
	ContentType string
}

// Check issues a GET for the first byte of the object behind signedURL.
// A HEAD would not match the GET signature, so a ranged GET is used instead.
func (c *Client) Check(ctx context.Context, signedURL string) (*CheckResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Range", "bytes=0-0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	result := &CheckResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, fmt.Errorf("signed URL rejected with status: %s", resp.Status)
	}

	return result, nil
}
