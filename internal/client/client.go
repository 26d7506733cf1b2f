package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/session"
)

// Client talks to the Hudey REST API. Every request carries the bearer
// token from Session when one can be obtained.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session session.Provider
}

func New(baseURL string, provider session.Provider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Session: provider,
	}
}

// Do sends the request and returns the raw response. Non-2xx answers are
// not errors here; callers decide what a status means.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if tok := c.bearer(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return httpClient.Do(req)
}

// bearer returns the cached token, refreshing once when nothing is cached.
// Failures are logged and the request goes out unauthenticated; the
// backend answers 401 in that case.
func (c *Client) bearer(ctx context.Context) string {
	if c.Session == nil {
		return ""
	}
	tok, err := c.Session.CachedToken(ctx)
	if err != nil {
		log.Println("⚠️ failed to read cached session token:", err)
		tok = ""
	}
	if tok != "" {
		return tok
	}
	tok, err = c.Session.RefreshToken(ctx)
	if err != nil {
		log.Println("⚠️ failed to refresh session token:", err)
		return ""
	}
	return tok
}

// call sends body as JSON and decodes a 2xx answer into out. Any other
// status becomes an *appErrors.APIError.
func (c *Client) call(ctx context.Context, method, path string, body any, action string, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return errorFrom(resp, action)
	}
	return decode(resp, out)
}

// find is call for single-resource reads: 404 reports found=false with
// no error.
func (c *Client) find(ctx context.Context, path, action string, out any) (bool, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if !ok(resp) {
		return false, errorFrom(resp, action)
	}
	if err := decode(resp, out); err != nil {
		return false, err
	}
	return true, nil
}

// soft is the dashboard read policy: any failure leaves out untouched and
// returns false so the caller keeps its placeholder.
func (c *Client) soft(ctx context.Context, path, action string, out any) bool {
	if err := c.call(ctx, http.MethodGet, path, nil, action, out); err != nil {
		log.Printf("⚠️ %s degraded: %v\n", action, err)
		return false
	}
	return true
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	return c.Do(ctx, method, path, reader, nil)
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

func decode(resp *http.Response, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorFrom reads {"detail": "..."} from the body. Validation errors carry
// a list in detail; those fall back to the generic message.
func errorFrom(resp *http.Response, action string) error {
	var body struct {
		Detail any `json:"detail"`
	}
	raw, _ := io.ReadAll(resp.Body)
	detail := ""
	if json.Unmarshal(raw, &body) == nil {
		if s, isString := body.Detail.(string); isString {
			detail = s
		}
	}
	return appErrors.NewAPIError(resp.StatusCode, detail, action)
}
