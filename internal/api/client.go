// Package api talks to the back-office CRUD API and provides a local
// stand-in server for development.
package api

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

	"github.com/google/uuid"
	"github.com/hallyupress/newsdesk/internal/config"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/version"
)

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 512

// ErrUnexpectedStatus is wrapped by StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL    string
	Resource   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client is the CRUD API of one resource. It implements reorder.Client.
type Client struct {
	baseURL  string
	resource string
	http     *http.Client
	logger   logging.Logger
}

var _ reorder.Client = (*Client)(nil)

// NewClient validates opts and returns a Client.
func NewClient(opts ClientOptions) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api: invalid base URL %q", opts.BaseURL)
	}
	resource := strings.Trim(strings.TrimSpace(opts.Resource), "/")
	if resource == "" || strings.Contains(resource, "/") {
		return nil, fmt.Errorf("api: invalid resource %q", opts.Resource)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	return &Client{
		baseURL:  strings.TrimRight(u.String(), "/"),
		resource: resource,
		http:     httpClient,
		logger:   opts.Logger.With("component", "api", "resource", resource),
	}, nil
}

// NewClientFromConfig builds a Client from api_* settings.
func NewClientFromConfig() (*Client, error) {
	return NewClient(ClientOptions{
		BaseURL:  config.Get("api_base_url", ""),
		Resource: config.Get("api_resource", ""),
		Timeout:  config.GetDuration("api_timeout_seconds", 10*time.Second),
	})
}

// Resource returns the resource name.
func (c *Client) Resource() string {
	return c.resource
}

func (c *Client) collectionURL() string {
	return c.baseURL + "/" + url.PathEscape(c.resource)
}

func (c *Client) itemURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// List fetches every item of the resource.
func (c *Client) List(ctx context.Context) ([]reorder.Item, error) {
	resp, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var items []reorder.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("api: decode list: %w", err)
	}
	return items, nil
}

// Update sends the item with its new rank and previous rank.
func (c *Client) Update(ctx context.Context, it reorder.Item) error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("api: update: empty item id")
	}
	body, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("api: encode item %s: %w", it.ID, err)
	}
	resp, err := c.do(ctx, http.MethodPut, c.itemURL(it.ID), body)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "url", target, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("api: %s %s: %w", method, target, err)
	}
	c.logger.Debug("request done", "method", method, "url", target, "request_id", requestID,
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method: method,
			URL:    target,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}
	return resp, nil
}
