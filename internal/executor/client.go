package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "wxsched/0.1"
	executePath      = "/api/execute"
	maxErrorBody     = 4 << 10
)

// Ensure HTTPClient implements Executor at compile time.
var _ Executor = (*HTTPClient)(nil)

// HTTPClient hands requests to an automation agent over HTTP.
type HTTPClient struct {
	baseURL     *url.URL
	http        *http.Client
	userAgent   string
	application string
}

// NewHTTPClient builds a client for the agent at baseURL ("host:port" or a
// full URL). application is forwarded with every request so the agent knows
// which Wires-X executable to drive.
func NewHTTPClient(baseURL, application string, timeout time.Duration) (*HTTPClient, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL:     base,
		http:        &http.Client{Timeout: timeout},
		userAgent:   defaultUserAgent,
		application: application,
	}, nil
}

type executeResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Execute POSTs req as JSON and returns the agent's status text.
func (c *HTTPClient) Execute(ctx context.Context, req Request) (Result, error) {
	if c == nil {
		return Result{}, &Error{Kind: KindTransport, Err: errors.New("client is nil")}
	}
	if req.Application == "" {
		req.Application = c.application
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: executePath})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, classify(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var payload executeResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Result{}, &Error{Kind: KindRejected, Status: resp.StatusCode, Err: errors.New(msg)}
	}

	var payload executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, &Error{Kind: KindTransport, Err: fmt.Errorf("decode response: %w", err)}
	}
	return Result{Status: payload.Status}, nil
}

func classify(ctx context.Context, err error) error {
	var netErr interface{ Timeout() bool }
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("executor url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse executor url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
