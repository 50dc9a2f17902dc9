package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"codearena/internal/common"
	"codearena/internal/platform/config"
)

const maxErrorBody = 4 << 10

// Client talks to a Judge0-compatible HTTP API using its synchronous
// "submit and wait" mode.
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient *http.Client
}

func NewClient(cfg config.JudgeConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		host:       cfg.Host,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Submit blocks until the judge returns a final status. Every failure,
// including a non-2xx answer or an undecodable body, wraps
// common.ErrJudgeUnavailable.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("judge: marshal request: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("judge: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-rapidapi-key", c.apiKey)
	}
	if c.host != "" {
		httpReq.Header.Set("x-rapidapi-host", c.host)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrJudgeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: judge returned status %d: %s", common.ErrJudgeUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrJudgeUnavailable, err)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", common.ErrJudgeUnavailable, err)
	}
	result.Raw = raw
	return &result, nil
}
