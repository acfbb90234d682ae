package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pagesmith/pagesmith/pkg/cache"
	"github.com/pagesmith/pagesmith/pkg/canvas"
	"github.com/pagesmith/pagesmith/pkg/errors"
	"github.com/pagesmith/pagesmith/pkg/httputil"
	"github.com/pagesmith/pagesmith/pkg/observability"
)

const httpTimeout = 30 * time.Second

// Request is the JSON body sent to the text-generation service.
// Components are listed in placement order; Prompt is optional free text
// supplied by the user alongside the canvas contents.
type Request struct {
	Prompt     string      `json:"prompt,omitempty"`
	Components []Component `json:"components"`
}

// Component is the wire form of a placed component.
type Component struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Label  string  `json:"label"`
	Region string  `json:"region"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// FromPlaced converts store records into their wire form.
func FromPlaced(components []canvas.PlacedComponent) []Component {
	out := make([]Component, 0, len(components))
	for _, c := range components {
		out = append(out, Component{
			ID:     c.ID,
			Type:   string(c.Type),
			Label:  c.Label,
			Region: string(c.Region),
			X:      c.Position.X,
			Y:      c.Position.Y,
		})
	}
	return out
}

// Client talks to an external text-generation service. It handles
// caching, retry logic, and request headers; the response payload is
// passed through untouched.
type Client struct {
	http     *http.Client
	cache    *httputil.Cache
	endpoint string
	headers  map[string]string
	retry    func(ctx context.Context, fn func() error) error
}

// NewClient creates a Client for the given endpoint URL.
// Pass nil for cache to disable response caching, and nil for headers
// if no default headers (e.g. authorization) are needed.
func NewClient(endpoint string, cache *httputil.Cache, headers map[string]string) (*Client, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid assist endpoint %q", endpoint)
	}
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    cache,
		endpoint: endpoint,
		headers:  headers,
		retry:    httputil.RetryWithBackoff,
	}, nil
}

// Suggest sends the request to the remote service and returns its raw
// JSON response. Responses are cached by a hash of the request body; if
// refresh is true the cache is bypassed and the entry overwritten.
func (c *Client) Suggest(ctx context.Context, req Request, refresh bool) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "encoding assist request")
	}

	key := "assist:" + cache.Hash(body)
	var cached json.RawMessage
	if c.cache != nil && !refresh {
		if ok, _ := c.cache.Get(key, &cached); ok {
			return cached, nil
		}
	}

	var resp json.RawMessage
	err = c.retry(ctx, func() error {
		var reqErr error
		resp, reqErr = c.post(ctx, body)
		return reqErr
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, resp)
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "building assist request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "assist request failed")}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "reading assist response")
	}
	if !json.Valid(data) {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "assist service returned non-JSON response")
	}
	return json.RawMessage(data), nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "assist endpoint not found")
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "assist service returned status %d", code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "assist service returned status %d", code)
	}
}
