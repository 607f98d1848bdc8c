package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Endpoints served by the detection backend
const (
	PathLogs           = "/logs"
	PathStats          = "/stats"
	PathAccidentStatus = "/accident_status"
	PathUploadVideo    = "/upload_video"
	PathVideoFeed      = "/video_feed"
)

// Config holds the backend connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: 10 * time.Second,
	}
}

// StatusError is returned when the backend answers with a non-2xx status
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Path, e.StatusCode)
}

// Client talks to the detection backend over HTTP
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// NewClient validates the base URL and builds a client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: missing host", cfg.BaseURL)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Client{
		base:    base,
		http:    &http.Client{},
		timeout: timeout,
		log:     logger.Named("backend"),
	}, nil
}

// BaseURL is the backend root, without trailing slash
func (c *Client) BaseURL() string {
	return c.base.String()
}

// VideoFeedURL is the absolute stream address for source
func (c *Client) VideoFeedURL(source string) string {
	return c.base.String() + FeedPath(source)
}

// FeedPath is the stream address relative to the backend root. The source
// is used as given.
func FeedPath(source string) string {
	return PathVideoFeed + "?source=" + source
}

// getJSON performs a GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}

	resp, err := c.do(req, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// do sends req with a request id and logs the round trip
func (c *Client) do(req *http.Request, path string) (*http.Response, error) {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		c.log.Debug("request failed", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}

	c.log.Debug("request done", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}
