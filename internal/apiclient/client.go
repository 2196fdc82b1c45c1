// Package apiclient is the authenticated REST client for the service desk API.
//
// Every request re-reads the session from the configured SessionStore and
// carries "Authorization: Bearer <token>" only when a live session exists.
// A failed store read rejects the request before it is sent.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 5 * time.Second

// Response is a completed 2xx exchange. Data holds the raw body.
type Response struct {
	Status int
	Data   json.RawMessage
	Header http.Header
}

type Client struct {
	baseURL  string
	http     *http.Client
	sessions SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Client)

// WithTimeout bounds every request, including reading the body
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.sessions = s }
}

// WithHTTPClient replaces the transport. The client's timeout is kept
// unless the given client sets its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		timeout := c.http.Timeout
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = timeout
		}
		c.http = &cp
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for baseURL (origin plus optional path prefix).
// Without WithSessionStore the session lives in memory.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		sessions: NewMemoryStore(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the live session, or nil when logged out or expired
func (c *Client) Session(ctx context.Context) (*Session, error) {
	s, err := c.sessions.Load(ctx)
	if err != nil {
		return nil, &SessionError{Op: "load", Err: err}
	}
	if s == nil || s.Token == "" {
		return nil, nil
	}
	if s.Expired(c.now()) {
		c.logger.DebugContext(ctx, "session expired, clearing", "expires_at", s.ExpiresAt)
		if err := c.sessions.Clear(ctx); err != nil {
			return nil, &SessionError{Op: "clear", Err: err}
		}
		return nil, nil
	}
	return s, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one request. A nil body sends no payload; a non-nil out receives
// the decoded response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (*Response, error) {
	session, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if session != nil {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, method, url, err)
	}
	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", c.now().Sub(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: serverMessage(raw), Body: raw}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return &Response{Status: resp.StatusCode, Data: raw, Header: resp.Header}, nil
}

func (c *Client) transportError(ctx context.Context, method, url string, err error) error {
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
	c.logger.DebugContext(ctx, "api transport failure", "method", method, "url", url, "timeout", timeout, "error", err)
	return &TransportError{Op: method, URL: url, Err: err, Timeout: timeout}
}

// serverMessage extracts {message} or {error} from an error body
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// envelope is the {data} wrapper of every endpoint except login
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// call sends a request and unwraps the envelope's data into out
func (c *Client) call(ctx context.Context, method, path string, body, out any) (string, error) {
	var env envelope
	if _, err := c.Do(ctx, method, path, body, &env); err != nil {
		return "", err
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("decode %s %s data: %w", method, path, err)
		}
	}
	return env.Message, nil
}
