package optimizerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultTimeout is the client-side timeout applied to the external
// optimizer round trip when the caller doesn't set one.
const DefaultTimeout = 30 * time.Second

// Client calls the external auto-generation/solver service's /generate and
// /check-feasibility endpoints. Transport errors and 5xx responses are
// retried with backoff; 4xx responses are not retried, since they indicate
// a malformed request rather than a transient fault.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	timeout    time.Duration
}

// NewClient builds a Client against baseURL (e.g. "http://optimizer:8090").
// maxRetries bounds the retry count on transport errors and 5xx responses;
// timeout bounds the whole round trip and is applied per-call via
// context.WithTimeout, defaulting to DefaultTimeout when zero.
func NewClient(baseURL string, maxRetries int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.Logger = nil
	rc.CheckRetry = retryPolicy
	return &Client{baseURL: baseURL, httpClient: rc, timeout: timeout}
}

// retryPolicy retries on transport-level errors and 5xx responses, but
// never on 4xx: a malformed request will not succeed on replay.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

// Generate calls POST /generate. A non-nil *OptimizerError return means the
// optimizer responded but declined to produce a schedule (an
// external-service error); a plain error means the round trip itself
// failed (network, timeout, non-2xx after retries).
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.post(ctx, "/generate", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return &resp, newOptimizerError(resp.Error)
	}
	return &resp, nil
}

// CheckFeasibility calls POST /check-feasibility.
func (c *Client) CheckFeasibility(ctx context.Context, req CheckFeasibilityRequest) (*CheckFeasibilityResponse, error) {
	var resp CheckFeasibilityResponse
	if err := c.post(ctx, "/check-feasibility", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("optimizerclient: marshal request: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("optimizerclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("optimizerclient: round trip to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("optimizerclient: read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("optimizerclient: %s returned status %d: %s", path, resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("optimizerclient: decode response from %s: %w", path, err)
	}
	return nil
}
