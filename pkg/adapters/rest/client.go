// Package rest maps the auth and note operations onto the remote HTTP
// JSON API and routes every response through the error classifier. No
// caching, no retries; the session cookie rides along in the client's
// cookie jar.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/inkpad/inkpad/pkg/core"
)

// Client implements core.AuthGateway and core.NoteGateway over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a custom transport. If it has no cookie jar,
// one is attached; without it the session cookie would be lost.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a gateway for the service at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	c := &Client{baseURL: strings.TrimRight(u.String(), "/")}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Login implements core.AuthGateway.
func (c *Client) Login(ctx context.Context, creds core.Credentials) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth/login", creds)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Register implements core.AuthGateway.
func (c *Client) Register(ctx context.Context, profile core.Profile) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth/register", profile)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// List implements core.NoteGateway.
func (c *Client) List(ctx context.Context) ([]core.Note, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/notes", nil)
	if err != nil {
		return nil, err
	}

	var notes []core.Note
	if err := json.Unmarshal(body, &notes); err != nil {
		return nil, decodeError(err)
	}
	return notes, nil
}

// Create implements core.NoteGateway.
func (c *Client) Create(ctx context.Context, draft core.Draft) (core.Note, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/notes", draft)
	if err != nil {
		return core.Note{}, err
	}
	return decodeNote(body)
}

// Get implements core.NoteGateway.
func (c *Client) Get(ctx context.Context, id int64) (core.Note, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%d", id), nil)
	if err != nil {
		return core.Note{}, err
	}
	return decodeNote(body)
}

// Update implements core.NoteGateway.
func (c *Client) Update(ctx context.Context, id int64, draft core.Draft) (core.Note, error) {
	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), draft)
	if err != nil {
		return core.Note{}, err
	}
	return decodeNote(body)
}

// Delete implements core.NoteGateway. The service answers 200 or 204
// with no payload worth keeping.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil)
	return err
}

// do performs one HTTP call and classifies the outcome. payload, when
// non-nil, is sent as a JSON body.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("remote call", "method", method, "path", path, "status", resp.StatusCode)
	return classify(resp)
}

func decodeNote(body []byte) (core.Note, error) {
	var note core.Note
	if err := json.Unmarshal(body, &note); err != nil {
		return core.Note{}, decodeError(err)
	}
	return note, nil
}

var _ core.AuthGateway = (*Client)(nil)
var _ core.NoteGateway = (*Client)(nil)
