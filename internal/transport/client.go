package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"pumlrender/internal/renderfail"
)

const (
	// DefaultServerURL is the public PlantUML rendering service root.
	DefaultServerURL = "https://www.plantuml.com/plantuml"

	// DefaultFormat is the artifact format requested when none is configured.
	DefaultFormat = "png"

	defaultTimeout = 15 * time.Second
	userAgent      = "pumlrender/0.1.0"
)

// DefaultBackoff is the delay schedule consulted between retry attempts.
// The final entry repeats for any attempt index beyond the schedule length.
func DefaultBackoff() []time.Duration {
	return []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
}

// Config captures the runtime settings for talking to the rendering server.
// MaxRetries bounds the retry budget: MaxRetries+1 total attempts are made.
// RetryInvalidSyntax controls whether HTTP 400 responses consume the retry
// budget like transient failures (the historical behavior) or abort on the
// first occurrence.
type Config struct {
	ServerURL          string
	Format             string
	Timeout            time.Duration
	MaxRetries         int
	RetryInvalidSyntax bool
}

// Client fetches rendered diagrams with bounded retries.
type Client struct {
	cfg        Config
	httpClient *http.Client
	backoff    []time.Duration
	sleeper    func(time.Duration)
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBackoff overrides the retry backoff schedule.
func WithBackoff(schedule []time.Duration) Option {
	return func(c *Client) {
		c.backoff = schedule
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithLogger attaches a logger for attempt and backoff reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a transport client using the supplied configuration.
func New(cfg Config, opts ...Option) *Client {
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	cfg.Format = strings.TrimSpace(cfg.Format)
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		backoff:    DefaultBackoff(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// URL returns the request URL for an encoded payload.
func (c *Client) URL(payload string) string {
	return RenderURL(c.cfg.ServerURL, c.cfg.Format, payload)
}

// RenderURL builds the rendering endpoint for a server root, artifact
// format, and encoded payload.
func RenderURL(serverURL, format, payload string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(serverURL, "/"), format, payload)
}

// Fetch retrieves the rendered artifact for payload. It makes up to
// MaxRetries+1 attempts, sleeping out the backoff schedule between
// retryable failures; the last attempt never sleeps. The returned error
// carries the classification of the final failure and the total attempt
// count.
func (c *Client) Fetch(ctx context.Context, payload string) ([]byte, error) {
	url := c.URL(payload)
	attempts := c.cfg.MaxRetries + 1
	var lastErr *renderfail.Error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying render request", "attempt", attempt, "max_retries", c.cfg.MaxRetries)
		}
		data, err := c.fetchOnce(ctx, url)
		if err == nil {
			c.logger.Debug("received rendered artifact", "bytes", len(data), "attempt", attempt+1)
			return data, nil
		}

		var rerr *renderfail.Error
		if !errors.As(err, &rerr) {
			rerr = renderfail.Wrap(renderfail.KindNetwork, "render request", err)
		}
		lastErr = rerr

		if !c.retryable(rerr.Kind) {
			return nil, rerr
		}
		if attempt >= c.cfg.MaxRetries {
			break
		}
		if ctx.Err() != nil {
			break
		}

		c.logger.Warn("render attempt failed", "attempt", attempt+1, "error", rerr)
		delay := backoffDelay(c.backoff, attempt)
		c.logger.Debug("waiting before retry", "delay", delay)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, renderfail.Wrap(renderfail.KindNetwork, "render request canceled", err)
		}
	}

	return nil, &renderfail.Error{
		Kind:     lastErr.Kind,
		Message:  lastErr.Message,
		Attempts: attempts,
		Err:      lastErr.Err,
	}
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, renderfail.Wrap(renderfail.KindNetwork, "build render request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, c.classifyTransportError(err)
		}
		return body, nil
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return nil, classifyStatus(resp.StatusCode)
}

func classifyStatus(status int) *renderfail.Error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return renderfail.New(renderfail.KindAccessDenied, fmt.Sprintf("HTTP %d: access denied (permanent error)", status))
	case status == http.StatusBadRequest:
		return renderfail.New(renderfail.KindInvalidSyntax, "HTTP 400: invalid diagram syntax (check your diagram)")
	case status == http.StatusTooManyRequests:
		return renderfail.New(renderfail.KindRateLimited, "HTTP 429: rate limited by server")
	case status >= 500:
		return renderfail.New(renderfail.KindRemoteServer, fmt.Sprintf("HTTP %d: rendering server error", status))
	default:
		return renderfail.New(renderfail.KindRemoteServer, fmt.Sprintf("HTTP %d: server error", status))
	}
}

func (c *Client) classifyTransportError(err error) *renderfail.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return renderfail.Wrap(renderfail.KindTimeout, fmt.Sprintf("request timed out after %s", c.cfg.Timeout), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return renderfail.Wrap(renderfail.KindTimeout, fmt.Sprintf("request timed out after %s", c.cfg.Timeout), err)
	}
	return renderfail.Wrap(renderfail.KindNetwork, "network error", err)
}

func (c *Client) retryable(kind renderfail.Kind) bool {
	if kind == renderfail.KindInvalidSyntax && !c.cfg.RetryInvalidSyntax {
		return false
	}
	return kind.Retryable()
}

// backoffDelay indexes the schedule by attempt number, clamping to the last
// entry once the index runs past the schedule.
func backoffDelay(schedule []time.Duration, attempt int) time.Duration {
	if len(schedule) == 0 {
		return 0
	}
	if attempt >= len(schedule) {
		return schedule[len(schedule)-1]
	}
	return schedule[attempt]
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
