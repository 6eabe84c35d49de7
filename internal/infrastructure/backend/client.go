// Package backend is the HTTP client for the billing backend API. All calls
// go to one base URL and carry the caller's bearer credential when it has
// one. Failures are returned as they happen: no retry, no token refresh.
package backend

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

	"github.com/rs/zerolog"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	defaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of an error response is read for its
	// message.
	maxErrorBody = 64 << 10
)

// CredentialSource yields the credential to send, if any.
type CredentialSource interface {
	Credential() (string, bool)
}

// CredentialFunc adapts a function to CredentialSource.
type CredentialFunc func() (string, bool)

func (f CredentialFunc) Credential() (string, bool) { return f() }

// Observer is told about every completed request. path has record ids
// replaced by ":id"; status is 0 when no response arrived.
type Observer func(method, path string, status int, elapsed time.Duration)

type requestIDKey struct{}

// WithRequestID returns ctx carrying id, which the client forwards as
// X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is safe for concurrent use. Bind a credential source with
// WithCredentials to get a per-caller view sharing the same transport.
type Client struct {
	base    *url.URL
	http    *http.Client
	creds   CredentialSource
	observe Observer
	log     zerolog.Logger
}

// Connect validates cfg and returns a client without credentials.
func Connect(cfg Config, log zerolog.Logger) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base url %q: scheme must be http or https", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		log:  log.With().Str("component", "backend").Logger(),
	}, nil
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// WithCredentials returns a copy of c that authenticates with src.
func (c *Client) WithCredentials(src CredentialSource) *Client {
	cp := *c
	cp.creds = src
	return &cp
}

// WithObserver returns a copy of c that reports requests to fn.
func (c *Client) WithObserver(fn Observer) *Client {
	cp := *c
	cp.observe = fn
	return &cp
}

func (c *Client) Auth() ports.AuthAPI { return authAPI{c} }
func (c *Client) Products() ports.ProductAPI { return productAPI{c} }
func (c *Client) Bills() ports.BillAPI { return billAPI{c} }
func (c *Client) Clients() ports.ClientAPI { return clientAPI{c} }

var _ ports.Backend = (*Client)(nil)

// Do sends one request. path is relative to the base URL; in, when not nil,
// is sent as JSON; out, when not nil, receives the decoded response.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base.JoinPath(strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if tok, ok := c.creds.Credential(); ok && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.report(method, path, 0, start)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.report(method, path, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &domain.RemoteError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("backend rejected request")
		return rerr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Ping checks that the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) report(method, path string, status int, start time.Time) {
	if c.observe != nil {
		c.observe(method, templatePath(path), status, time.Since(start))
	}
}

// templatePath replaces record ids so observers see a bounded set of paths.
func templatePath(p string) string {
	for _, prefix := range []string{"/products/", "/auth/client/"} {
		if strings.HasPrefix(p, prefix) {
			return prefix + ":id"
		}
	}
	return p
}

func errorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
