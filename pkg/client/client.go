package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/helmcode/aomaas/pkg/apperrors"
	"github.com/helmcode/aomaas/pkg/model"
)

// DefaultEndpoint is the analysis route served by `aomaas serve` on its default address.
const DefaultEndpoint = "http://localhost:8080/api/v1/repositories/mine-opportunities"

// maxDetailBytes caps how much of an error body ends up in the operator log.
const maxDetailBytes = 512

// Client talks to a repository-analysis endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// New creates a client for endpoint. A zero timeout leaves the call bounded
// only by the caller's context.
func New(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// MineOpportunities posts req and decodes the analysis result. Any non-2xx
// status is a request failure; the call is never retried.
func (c *Client) MineOpportunities(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, apperrors.NewRequestError("build request", 0, c.endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewRequestError("send request", 0, c.endpoint, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewRequestError("read response", resp.StatusCode, "", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewRequestError(
			fmt.Sprintf("unexpected status %d", resp.StatusCode),
			resp.StatusCode,
			excerpt(respBytes),
			nil,
		)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, apperrors.NewRequestError("decode response", resp.StatusCode, excerpt(respBytes), err)
	}
	return &result, nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxDetailBytes {
		return s
	}
	cut := maxDetailBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
