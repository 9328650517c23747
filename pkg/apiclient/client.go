// Package apiclient talks to the dashboard API with a bearer token and
// transparently refreshes it once when the server answers 401.
package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// ErrUnauthorized is returned once the session cannot be recovered.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// APIError is any non-2xx answer other than an unrecoverable 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: %d %s", e.Status, e.Message)
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }
func WithTokenStore(s TokenStore) Option    { return func(c *Client) { c.store = s } }
func WithOnLogout(fn func()) Option         { return func(c *Client) { c.onLogout = fn } }
func WithRefreshPath(p string) Option       { return func(c *Client) { c.refreshPath = p } }

type Client struct {
	baseURL     string
	http        *http.Client
	store       TokenStore
	onLogout    func()
	refreshPath string

	mu       sync.Mutex
	inflight *refreshCall
}

type refreshCall struct {
	done chan struct{}
	err  error
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: 30 * time.Second},
		store:       &MemoryStore{},
		refreshPath: "/auth/refresh",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends body as JSON and decodes the envelope data into out (out may be nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
		payload = b
	}
	raw, err := c.roundTrip(ctx, method, path, payload)
	if err != nil {
		return err
	}
	return decodeData(raw, out)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Download returns the raw response body of an authenticated GET.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	return c.roundTrip(ctx, http.MethodGet, path, nil)
}

// roundTrip performs the request, refreshing and retrying once on 401.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	access, _ := c.store.Tokens()
	status, raw, err := c.send(ctx, method, path, payload, access)
	if err != nil {
		return nil, err
	}
	// Anonymous calls (login) surface the server's 401 as is.
	if status == http.StatusUnauthorized && access != "" {
		if err := c.refresh(ctx, access); err != nil {
			return nil, err
		}
		access, _ = c.store.Tokens()
		status, raw, err = c.send(ctx, method, path, payload, access)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, ErrUnauthorized
		}
	}
	if status < 200 || status > 299 {
		return nil, apiError(status, raw)
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, access string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("apiclient: read body: %w", err)
	}
	return res.StatusCode, raw, nil
}

// refresh exchanges the refresh token. Callers that saw the same stale
// access token share a single request.
func (c *Client) refresh(ctx context.Context, stale string) error {
	c.mu.Lock()
	if current, _ := c.store.Tokens(); current != stale && current != "" {
		c.mu.Unlock()
		return nil
	}
	if call := c.inflight; call != nil {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	c.inflight = call
	c.mu.Unlock()

	call.err = c.doRefresh(ctx)

	c.mu.Lock()
	c.inflight = nil
	c.mu.Unlock()
	close(call.done)
	return call.err
}

func (c *Client) doRefresh(ctx context.Context) error {
	_, refreshToken := c.store.Tokens()
	if refreshToken == "" {
		c.logout()
		return ErrUnauthorized
	}
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return fmt.Errorf("apiclient: encode refresh: %w", err)
	}
	status, raw, err := c.send(ctx, http.MethodPost, c.refreshPath, payload, "")
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		c.logout()
		return ErrUnauthorized
	}
	var pair Session
	if err := decodeData(raw, &pair); err != nil || pair.AccessToken == "" {
		c.logout()
		return ErrUnauthorized
	}
	c.store.Set(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (c *Client) logout() {
	c.store.Clear()
	if c.onLogout != nil {
		c.onLogout()
	}
}

func decodeData(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("apiclient: decode envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("apiclient: decode data: %w", err)
	}
	return nil
}

func apiError(status int, raw []byte) *APIError {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		return &APIError{Status: status, Message: env.Error}
	}
	return &APIError{Status: status, Message: http.StatusText(status)}
}
