package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"golang.org/x/oauth2"
)

const maxResponseBytes = 8 << 20

// Client talks to the remote data service over GraphQL-over-HTTP. Login operations are sent
// without credentials; every other operation carries the session's bearer token.
type Client struct {
	endpoint string
	public   *http.Client
	authed   *http.Client
}

// ClientOption is a functional option for configuring the client
type ClientOption func(*clientConfig)

type clientConfig struct {
	base    http.RoundTripper
	timeout time.Duration
}

// WithTransport sets the round tripper underneath authentication.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *clientConfig) {
		c.base = rt
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// NewClient creates a client for endpoint. tokens supplies the bearer token of authenticated operations.
func NewClient(endpoint string, tokens oauth2.TokenSource, options ...ClientOption) *Client {
	cfg := clientConfig{base: http.DefaultTransport, timeout: 15 * time.Second}
	for _, option := range options {
		option(&cfg)
	}
	return &Client{
		endpoint: endpoint,
		public:   &http.Client{Transport: cfg.base, Timeout: cfg.timeout},
		// no ReuseTokenSource: the session may change between requests
		authed: &http.Client{Transport: &oauth2.Transport{Source: tokens, Base: cfg.base}, Timeout: cfg.timeout},
	}
}

type request struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
}

type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors,omitempty"`
}

// do runs op with vars and decodes its result field into out (which may be nil).
func (c *Client) do(ctx context.Context, op operation, vars any, out any) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("operation", op.Name))

	body, err := json.Marshal(request{OperationName: op.Name, Query: op.Document, Variables: vars})
	if err != nil {
		return fmt.Errorf("%s: failed to encode variables: %w", op.Name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := c.authed
	if op.Public {
		httpClient = c.public
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return fmt.Errorf("%s: %w", op.Name, apperrors.ErrUnauthorized)
		}
		logger.Warn("Remote request failed", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w: %w", op.Name, apperrors.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: reading response: %w: %w", op.Name, apperrors.ErrNetworkFailure, err)
	}
	logger.Debug("Remote request completed", slog.Int("status", resp.StatusCode), slog.Duration("latency", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op.Name, apperrors.ErrUnauthorized)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: status %d: %w", op.Name, resp.StatusCode, apperrors.ErrNetworkFailure)
	}

	var decoded response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%s: malformed response (status %d): %w", op.Name, resp.StatusCode, apperrors.ErrNetworkFailure)
	}
	if len(decoded.Errors) > 0 {
		first := decoded.Errors[0]
		return &RemoteError{Operation: op.Name, Code: first.Extensions.Code, Message: first.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d without errors: %w", op.Name, resp.StatusCode, apperrors.ErrNetworkFailure)
	}

	if out == nil {
		return nil
	}
	field, ok := decoded.Data[op.Field]
	if !ok {
		return fmt.Errorf("%s: response has no %q field: %w", op.Name, op.Field, apperrors.ErrNetworkFailure)
	}
	if err := json.Unmarshal(field, out); err != nil {
		return fmt.Errorf("%s: decoding %q: %w: %w", op.Name, op.Field, apperrors.ErrNetworkFailure, err)
	}
	return nil
}
