// Package client is the HTTP data source for the admin console. It talks to
// the admin REST API, attaches credentials and normalizes responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/svcadmin/internal/domain"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 1 << 16
)

// Config configures a Client.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials CredentialProvider
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Client calls the admin API.
type Client struct {
	base  *url.URL
	http  *http.Client
	creds CredentialProvider
	log   *slog.Logger
}

// envelope mirrors the API's JSON response wrapper.
type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// New creates a Client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("client: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: base URL scheme must be http or https, got %q", base.Scheme)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	c := &Client{base: base, http: hc, creds: cfg.Credentials, log: log}
	if lp, ok := cfg.Credentials.(*LoginProvider); ok && lp.client == nil {
		lp.client = c
	}
	return c, nil
}

// do sends one API request and decodes the envelope's data into out.
// Non-2xx responses become *domain.AppError values carrying the code that
// matches the HTTP status.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	err := c.send(ctx, method, path, query, body, out, true)
	if err == nil || !domain.IsUnauthorized(err) {
		return err
	}
	inv, ok := c.creds.(invalidator)
	if !ok {
		return err
	}
	// The token may have expired; log in again once.
	inv.Invalidate()
	return c.send(ctx, method, path, query, body, out, true)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any, authenticate bool) error {
	u := c.base.JoinPath(apiPrefix, path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return domain.NewAppError(domain.CodeInternal, "encode request body", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if authenticate && c.creds != nil {
		token, err := c.creds.Token(ctx)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "api call",
		slog.String("method", method),
		slog.String("path", u.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
		slog.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return domain.NewAppError(domain.CodeInternal, "decode response", err)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return domain.NewAppError(domain.CodeInternal, "decode response data", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	code := domain.CodeFromHTTPStatus(resp.StatusCode)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Message == "" {
		return domain.NewAppError(code, http.StatusText(resp.StatusCode), nil)
	}
	return &domain.AppError{Code: code, Message: env.Message, Fields: env.Errors}
}
