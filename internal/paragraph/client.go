package paragraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 1 << 22

// ErrNoAPIKey is returned before any network call when no credential is
// configured.
var ErrNoAPIKey = errors.New("Paragraph API key is not configured: set PARAGRAPH_API_KEY")

// Request describes one outbound Paragraph API call. Either Body (JSON) or
// RawBody (verbatim, with its own content type) may be set, not both.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is the API path relative to the base URL, already escaped.
	Path string
	// Query holds optional query parameters.
	Query url.Values
	// Body is serialized as JSON when non-nil.
	Body any
	// RawBody is sent verbatim; used for multipart uploads.
	RawBody io.Reader
	// ContentType overrides the content type when RawBody is set.
	ContentType string
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API base URL.
	BaseURL string
	// APIKey is the bearer token.
	APIKey string
	// RatePerSecond throttles outbound calls; zero disables the limiter.
	RatePerSecond float64
	// Burst is the limiter burst size.
	Burst int
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	// Logger logs outbound calls at debug level.
	Logger *slog.Logger
}

// Client executes authenticated requests against the Paragraph API and
// classifies responses. It holds no state beyond its configuration.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient builds a Client from Options.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		http:    httpClient,
		limiter: limiter,
		logger:  opts.Logger,
	}
}

// Do executes the request and returns the parsed response body: decoded JSON
// when the content type says so, the trimmed text otherwise, and an
// empty-success marker for 204 or empty bodies.
func (c *Client) Do(ctx context.Context, req Request) (any, error) {
	data, contentType, status, err := c.call(ctx, req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return EmptyResult(), nil
	}
	if isJSONContentType(contentType) {
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return parsed, nil
	}
	return strings.TrimSpace(string(data)), nil
}

// DoInto executes the request and decodes the JSON response into out.
func (c *Client) DoInto(ctx context.Context, req Request, out any) error {
	data, _, status, err := c.call(ctx, req)
	if err != nil {
		return err
	}
	if status == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("empty response from %s", req.Path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// EmptyResult marks a successful call whose response carried no body.
func EmptyResult() map[string]any {
	return map[string]any{"ok": true}
}

func (c *Client) call(ctx context.Context, req Request) ([]byte, string, int, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, "", 0, ErrNoAPIKey
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.RawBody != nil:
		body = req.RawBody
		contentType = req.ContentType
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", 0, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", 0, err
		}
	}

	if c.logger != nil {
		c.logger.Debug("paragraph request", "method", req.Method, "path", req.Path)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, "", 0, fmt.Errorf("paragraph request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, "", 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", 0, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
		}
	}

	return data, resp.Header.Get("Content-Type"), resp.StatusCode, nil
}

func isJSONContentType(value string) bool {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
