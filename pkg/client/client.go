package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/platinummonkey/backoffice/pkg/session"
)

// Client calls the console's /api endpoints
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client

	Auth       *AuthService
	Categories *CategoriesService
	Products   *ProductsService
	Sales      *SalesService
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient uses hc for every request. A cookie jar is attached to a
// copy of hc if it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the console served at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		hc := *c.httpClient
		hc.Jar = jar
		c.httpClient = &hc
	}

	c.Auth = &AuthService{client: c}
	c.Categories = &CategoriesService{resource[Category]{client: c, path: "/api/categories"}}
	c.Products = &ProductsService{resource[Product]{client: c, path: "/api/products"}}
	c.Sales = &SalesService{resource[Sale]{client: c, path: "/api/sales"}}

	return c, nil
}

// BaseURL returns the console URL this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SessionToken returns the session cookie currently held for the console
func (c *Client) SessionToken() (string, bool) {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == session.CookieName && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}

// SetSessionToken installs a previously saved session cookie. An empty token
// removes it.
func (c *Client) SetSessionToken(token string) {
	cookie := &http.Cookie{
		Name:  session.CookieName,
		Value: token,
		Path:  "/",
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{cookie})
}

// do sends one request and decodes a 2xx body into T. A 204 yields T's zero
// value without reading the body.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return zero, networkError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		req.Header.Set("Cache-Control", "no-store")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return zero, nil
	}

	// an unreadable body is treated as empty
	raw, _ := io.ReadAll(resp.Body)
	data := parseBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, responseError(resp.StatusCode, data)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, networkError(fmt.Errorf("failed to decode response: %w", err))
	}
	return out, nil
}

// parseBody turns a response body into JSON: empty becomes null and text
// that is not JSON becomes {"message": text}
func parseBody(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	wrapped, err := json.Marshal(map[string]string{"message": string(raw)})
	if err != nil {
		return json.RawMessage("null")
	}
	return json.RawMessage(wrapped)
}
