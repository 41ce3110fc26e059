package bowen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/pkg/log"
	"github.com/sandevgo/bowen/pkg/retry"
)

var ErrNotReady = errors.New("service is not ready")

// Client talks to the legislation service. Requests go to the versioned base
// first and fall back to the legacy base when the primary cannot be reached
// or answers 5xx.
type Client struct {
	client   *http.Client
	primary  string
	fallback string
}

func NewClient(cfg core.APIConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		primary:  strings.TrimRight(cfg.GetPrimaryBaseURL(), "/"),
		fallback: strings.TrimRight(cfg.GetFallbackBaseURL(), "/"),
	}
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *Client) SendMessage(ctx context.Context, text, sessionID string) (*core.ChatResponse, error) {
	payload := core.ChatRequest{
		Message:   text,
		SessionID: sessionID,
	}

	resp, err := c.doWithFallback(ctx, http.MethodPost, "/chat", payload)
	if err != nil {
		return nil, err
	}

	var out core.ChatResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActs returns the acts the service can answer about.
func (c *Client) GetActs(ctx context.Context) ([]core.Act, error) {
	resp, err := c.doWithFallback(ctx, http.MethodGet, "/acts", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, parseAPIError(resp.status, resp.body)
	}

	var wrapped core.ActsResponse
	if err := json.Unmarshal(resp.body, &wrapped); err == nil {
		return wrapped.Acts, nil
	}

	// older deployments answer with a bare list of titles
	var titles []string
	if err := json.Unmarshal(resp.body, &titles); err != nil {
		return nil, fmt.Errorf("decode acts: %w", err)
	}
	acts := make([]core.Act, 0, len(titles))
	for _, t := range titles {
		acts = append(acts, core.Act{Title: t})
	}
	return acts, nil
}

// CheckHealth reports whether the service answers its health endpoint.
func (c *Client) CheckHealth(ctx context.Context) bool {
	resp, err := c.doWithFallback(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("health check failed")
		return false
	}
	return resp.ok()
}

func (c *Client) Health(ctx context.Context) (*core.HealthStatus, error) {
	resp, err := c.doWithFallback(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var out core.HealthStatus
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Search(ctx context.Context, query string, limit int) (*core.SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.doWithFallback(ctx, http.MethodGet, "/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var out core.SearchResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Version exists on the versioned API only, so there is no fallback.
func (c *Client) Version(ctx context.Context) (*core.VersionInfo, error) {
	resp, err := c.do(ctx, c.primary, http.MethodGet, "/version", nil)
	if err != nil {
		return nil, err
	}

	var out core.VersionInfo
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitReady polls health until the service reports it can answer questions.
// A 503 carrying retry_after sets the next wait; other API errors stop.
func (c *Client) WaitReady(ctx context.Context, r *retry.Retrier) (*core.HealthStatus, error) {
	logger := log.FromCtx(ctx)

	var last *core.HealthStatus
	err := r.Do(ctx, func() error {
		h, err := c.Health(ctx)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				if apiErr.IsRetryable() {
					return retry.After(apiErr.RetryAfterDuration(), err)
				}
				if apiErr.Status < 500 {
					return retry.Permanent(err)
				}
			}
			logger.Debug().Err(err).Msg("service not reachable yet")
			return err
		}

		last = h
		if !h.Ready() {
			logger.Debug().
				Bool("embeddings", h.EmbeddingsLoaded).
				Bool("model", h.ModelLoaded).
				Bool("anthropic", h.AnthropicReady).
				Msg("service still initializing")
			return ErrNotReady
		}
		return nil
	})
	return last, err
}

func (c *Client) doWithFallback(ctx context.Context, method, path string, body any) (*response, error) {
	resp, err := c.do(ctx, c.primary, method, path, body)
	if err == nil && resp.status < http.StatusInternalServerError {
		return resp, nil
	}
	if ctx.Err() != nil || c.fallback == "" || c.fallback == c.primary {
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	ev := log.FromCtx(ctx).Debug().Str("path", path)
	if err != nil {
		ev = ev.Err(err)
	} else {
		ev = ev.Int("status", resp.status)
	}
	ev.Msg("primary endpoint failed, trying fallback")

	return c.do(ctx, c.fallback, method, path, body)
}

func (c *Client) do(ctx context.Context, base, method, path string, body any) (*response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.BowenUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &response{status: resp.StatusCode, body: data}, nil
}

func decode(resp *response, out any) error {
	if !resp.ok() {
		return parseAPIError(resp.status, resp.body)
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
