package lfx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.mentorship.lfx.linuxfoundation.org"
	defaultPageSize = 100
	defaultTimeout  = 30 * time.Second

	paginatePath = "projects/cache/paginate"
	maxErrorBody = 4096
)

// defaultHeaders mirrors what the mentorship web app sends; the API rejects
// some requests without the CORS-style headers.
func defaultHeaders() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0")
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	h.Set("Origin", "https://mentorship.lfx.linuxfoundation.org")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-site")
	return h
}

// NewClient instantiates an LFX Mentorship API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("lfx: parse base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	headers := defaultHeaders()
	for k, vs := range cfg.Headers {
		headers.Del(k)
		for _, v := range vs {
			headers.Add(k, v)
		}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		pageSize:   pageSize,
		headers:    headers,
		limiter:    cfg.Limiter,
	}, nil
}

// Fetch builds a client from cfg and fetches the listing once.
func Fetch(ctx context.Context, cfg Config) (*Listing, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, &FetchError{Op: "configure", Err: err}
	}
	return c.Fetch(ctx)
}

// Fetch issues the single paginate request and returns the decoded listing.
// Only the first page is requested.
func (c *Client) Fetch(ctx context.Context) (*Listing, error) {
	if c == nil {
		return nil, &FetchError{Op: "fetch", Message: "client is nil"}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Op: "rate limit", Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := c.buildPaginateURL()
	if err != nil {
		return nil, &FetchError{Op: "build url", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Op: "build request", Err: err}
	}
	req.Header = c.headers.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, &FetchError{Op: "request", Message: "timed out after " + c.timeout.String(), Err: err}
		}
		return nil, &FetchError{Op: "request", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Op:         "request",
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: "read body", Err: err}
	}

	return ParseListing(body, time.Now().UTC())
}

func (c *Client) buildPaginateURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	u.Path = path.Join("/", u.Path, paginatePath)

	values := url.Values{}
	values.Set("from", "0")
	values.Set("size", strconv.Itoa(c.pageSize))
	values.Set("sortby", "updatedStamp")
	values.Set("order", "desc")
	values.Set("status", "open")
	values.Set("accepting", "true")

	u.RawQuery = values.Encode()
	return u.String(), nil
}

// ParseListing decodes a paginate response body. A top-level "message" key is
// the upstream's error convention and is reported as a FetchError. A body
// without a hits.hits array is a SchemaError; individual hits are decoded
// lazily by Records.
func ParseListing(body []byte, fetchedAt time.Time) (*Listing, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, &FetchError{Op: "decode response", Err: err}
	}

	if msg, ok := top["message"]; ok {
		return nil, &FetchError{Op: "api", Message: messageText(msg)}
	}

	var payload paginateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaError{Index: -1, Field: "hits.hits", Err: err}
		}
		return nil, &FetchError{Op: "decode response", Err: err}
	}
	if payload.Hits == nil || payload.Hits.Hits == nil {
		return nil, &SchemaError{Index: -1, Field: "hits.hits"}
	}

	raw := make([]byte, len(body))
	copy(raw, body)

	return &Listing{
		hits:      payload.Hits.Hits,
		raw:       raw,
		fetchedAt: fetchedAt,
	}, nil
}

func messageText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	if t := strings.TrimSpace(string(raw)); t != "" && t != "null" {
		return t
	}
	return "upstream returned an error payload"
}
