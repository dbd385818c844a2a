// Package api talks to the remote product and auth service. Every endpoint
// answers with the {success, message, data} envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultProductsPath = "/api"
	DefaultSellersPath  = "/api/sellers"
	DefaultTimeout      = 10 * time.Second

	maxBodyBytes = 8 << 20
)

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the header is omitted.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

// Config describes where the service lives.
type Config struct {
	BaseURL      string
	ProductsPath string
	SellersPath  string
	Timeout      time.Duration
	// HTTPClient replaces the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client is the remote product service client.
type Client struct {
	baseURL      string
	productsPath string
	sellersPath  string
	httpClient   *http.Client
	tokens       TokenSource
}

// NewClient constructs a client. A nil TokenSource sends no bearer header.
func NewClient(cfg Config, tokens TokenSource) *Client {
	if cfg.ProductsPath == "" {
		cfg.ProductsPath = DefaultProductsPath
	}
	if cfg.SellersPath == "" {
		cfg.SellersPath = DefaultSellersPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		productsPath: "/" + strings.Trim(cfg.ProductsPath, "/"),
		sellersPath:  "/" + strings.Trim(cfg.SellersPath, "/"),
		httpClient:   httpClient,
		tokens:       tokens,
	}
}

// WithTokens returns a copy of the client that authenticates with tokens.
func (c *Client) WithTokens(tokens TokenSource) *Client {
	cp := *c
	if tokens == nil {
		tokens = StaticToken("")
	}
	cp.tokens = tokens
	return &cp
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`

	raw []byte
}

// payload is the envelope data, or the whole body when the service answered
// without wrapping it.
func (e envelope) payload() []byte {
	if len(bytes.TrimSpace(e.Data)) > 0 && !bytes.Equal(bytes.TrimSpace(e.Data), []byte("null")) {
		return e.Data
	}
	if e.Success == nil {
		return e.raw
	}
	return nil
}

type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, r request) (envelope, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return envelope{}, &TransportError{Op: r.op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, &TransportError{Op: r.op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return envelope{}, &TransportError{Op: r.op, Status: resp.StatusCode, Err: err}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	env, decodeErr := decodeEnvelope(body)

	switch {
	case decodeErr != nil && !ok:
		return envelope{}, &TransportError{Op: r.op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", http.StatusText(resp.StatusCode))}
	case decodeErr != nil:
		return envelope{}, &TransportError{Op: r.op, Status: resp.StatusCode, Err: decodeErr}
	case !ok && env.Success == nil:
		return envelope{}, &TransportError{Op: r.op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", http.StatusText(resp.StatusCode))}
	case env.Success == nil:
		// unwrapped payload on a 2xx
		return env, nil
	case !ok || !*env.Success:
		return envelope{}, &ServiceError{Op: r.op, Status: resp.StatusCode, Message: strings.TrimSpace(env.Message)}
	}
	return env, nil
}

var errEmptyBody = errors.New("empty response body")

func decodeEnvelope(body []byte) (envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return envelope{}, errEmptyBody
	}
	env := envelope{raw: trimmed}
	if trimmed[0] != '{' {
		// bare payload such as a JSON array
		if !json.Valid(trimmed) {
			return envelope{}, errors.New("response is not JSON")
		}
		return env, nil
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return envelope{}, err
	}
	env.raw = trimmed
	return env, nil
}
