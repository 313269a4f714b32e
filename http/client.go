// Package http provides an HTTP implementation of xbrlfacts.FilingSource
// backed by the EDINET API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/xbrlfacts"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the EDINET API v2 endpoint.
const DefaultBaseURL = "https://api.edinet-fsa.go.jp/api/v2"

// DefaultTimeout is the default timeout for a single HTTP request.
const DefaultTimeout = 30 * time.Second

// DefaultMaxArchiveSize bounds the size of a downloaded archive.
const DefaultMaxArchiveSize = 512 << 20

// EDINET document list and document types.
const (
	listTypeMetadataAndResults = "2"
	documentTypeXBRL           = "1"
)

// Ensure Client implements xbrlfacts.FilingSource at compile time.
var _ xbrlfacts.FilingSource = (*Client)(nil)

// Client retrieves document lists and filing archives from EDINET.
type Client struct {
	client         *http.Client
	baseURL        string
	apiKey         string
	timeout        time.Duration
	limiter        *rate.Limiter
	retryDelays    []time.Duration
	maxArchiveSize int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL sets the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithAPIKey sets the EDINET subscription key.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithRateLimit limits requests per second. A value <= 0 disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetryDelays sets the backoff delays between attempts.
// An empty slice disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// WithMaxArchiveSize sets the largest response body accepted.
func WithMaxArchiveSize(n int64) Option {
	return func(c *Client) {
		c.maxArchiveSize = n
	}
}

// NewClient creates a new EDINET client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		timeout:        DefaultTimeout,
		limiter:        rate.NewLimiter(rate.Limit(1), 1),
		retryDelays:    DefaultRetryDelays(),
		maxArchiveSize: DefaultMaxArchiveSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// metadata is the status envelope EDINET wraps responses in.
type metadata struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type listResponse struct {
	Metadata metadata                  `json:"metadata"`
	Results  []*xbrlfacts.DocumentInfo `json:"results"`
}

// errorResponse covers both error shapes EDINET returns.
type errorResponse struct {
	Metadata   *metadata `json:"metadata"`
	StatusCode int       `json:"StatusCode"`
	Message    string    `json:"message"`
}

// ListDocuments returns the documents submitted on the given date.
func (c *Client) ListDocuments(ctx context.Context, date time.Time) ([]*xbrlfacts.DocumentInfo, error) {
	params := url.Values{}
	params.Set("date", date.Format("2006-01-02"))
	params.Set("type", listTypeMetadataAndResults)

	var docs []*xbrlfacts.DocumentInfo
	err := c.withRetry(ctx, func() error {
		body, contentType, err := c.get(ctx, "/documents.json", params)
		if err != nil {
			return err
		}

		if !isJSON(contentType) {
			return xbrlfacts.Errorf(xbrlfacts.EINVALID, "unexpected content type %q", contentType)
		}

		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return xbrlfacts.Errorf(xbrlfacts.EINVALID, "failed to decode document list: %v", err)
		}
		if resp.Metadata.Status != "" && resp.Metadata.Status != "200" {
			return statusError(resp.Metadata.Status, resp.Metadata.Message)
		}

		docs = resp.Results
		return nil
	})
	if err != nil {
		return nil, err
	}

	if docs == nil {
		docs = []*xbrlfacts.DocumentInfo{}
	}
	return docs, nil
}

// FetchArchive returns the zipped XBRL archive of a document.
func (c *Client) FetchArchive(ctx context.Context, docID string) ([]byte, error) {
	if docID == "" {
		return nil, xbrlfacts.Errorf(xbrlfacts.EINVALID, "document ID required")
	}

	params := url.Values{}
	params.Set("type", documentTypeXBRL)

	var data []byte
	err := c.withRetry(ctx, func() error {
		body, contentType, err := c.get(ctx, "/documents/"+url.PathEscape(docID), params)
		if err != nil {
			return err
		}

		// EDINET reports errors as JSON with a 200 status.
		if isJSON(contentType) {
			return decodeError(body)
		}

		data = body
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// get performs one rate-limited GET request and returns the body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", err
		}
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if c.apiKey != "" {
		q.Set("Subscription-Key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, "", &retryableError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", xbrlfacts.Errorf(xbrlfacts.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, path)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, "", &retryableError{err: fmt.Errorf("HTTP %d for %s", resp.StatusCode, path)}
	case resp.StatusCode != http.StatusOK:
		return nil, "", xbrlfacts.Errorf(xbrlfacts.EINVALID, "HTTP %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxArchiveSize+1))
	if err != nil {
		return nil, "", &retryableError{err: err}
	}
	if int64(len(body)) > c.maxArchiveSize {
		return nil, "", xbrlfacts.Errorf(xbrlfacts.EINVALID, "response for %s exceeds %d bytes", path, c.maxArchiveSize)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

func decodeError(body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return xbrlfacts.Errorf(xbrlfacts.EINVALID, "failed to decode error response: %v", err)
	}
	if resp.Metadata != nil {
		return statusError(resp.Metadata.Status, resp.Metadata.Message)
	}
	return statusError(strconv.Itoa(resp.StatusCode), resp.Message)
}

func statusError(status, message string) error {
	switch status {
	case "404":
		return xbrlfacts.Errorf(xbrlfacts.ENOTFOUND, "EDINET status %s: %s", status, message)
	case "500", "503":
		return &retryableError{err: fmt.Errorf("EDINET status %s: %s", status, message)}
	default:
		return xbrlfacts.Errorf(xbrlfacts.EINVALID, "EDINET status %s: %s", status, message)
	}
}

// retryableError marks failures worth another attempt.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
