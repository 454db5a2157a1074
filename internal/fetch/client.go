package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/nao1215/neocc/internal/model"
)

// Defaults used when no option overrides them.
const (
	DefaultTimeout     = 60 * time.Second
	DefaultMaxBodySize = 64 * 1024 * 1024
	DefaultUserAgent   = "neocc/1.0"
)

// Cache stores fetched documents between runs.
type Cache interface {
	// Get returns the cached document for url if it is younger than maxAge.
	Get(ctx context.Context, url string, maxAge time.Duration) (*model.Document, bool, error)

	// Put stores doc, replacing any previous copy of the same URL.
	Put(ctx context.Context, doc *model.Document) error
}

// Client fetches documents from the portal. It is safe for concurrent use.
type Client struct {
	http        *http.Client
	userAgent   string
	maxBodySize int64
	timeout     time.Duration
	limiter     *rate.Limiter
	cache       Cache
	cacheMaxAge time.Duration
	metrics     *Metrics
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use it to
// point the client at an httptest server.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the largest body accepted. Zero keeps the default.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit caps requests per second across all callers.
// A non-positive rate disables the limiter.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithCache serves documents younger than maxAge from cache and stores
// every fetched document in it.
func WithCache(cache Cache, maxAge time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheMaxAge = maxAge
	}
}

// WithMetrics records request counters in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		timeout:     DefaultTimeout,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = NewHTTPClient(c.timeout)
	}
	return c
}

// NewHTTPClient returns an HTTP client with the given timeout and a
// bounded connection pool.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// Fetch downloads url and decodes the body. A fresh cached copy is
// returned without contacting the portal.
func (c *Client) Fetch(ctx context.Context, url string) (*model.Document, error) {
	if doc, ok := c.fromCache(ctx, url); ok {
		return doc, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request for %s: %w", model.ErrInvalidSelector, url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain,text/html;q=0.9,*/*;q=0.8")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(outcomeNetworkError, c.now().Sub(start), 0)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("GET %s: %w", url, ctxErr)
		}
		return nil, fmt.Errorf("%w: GET %s: %w", model.ErrTransientServer, url, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(url, resp.StatusCode); err != nil {
		c.metrics.observe(outcomeFor(resp.StatusCode), c.now().Sub(start), 0)
		c.logger.Debug("portal returned an error status",
			"url", url,
			"status", resp.StatusCode,
		)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		c.metrics.observe(outcomeNetworkError, c.now().Sub(start), 0)
		return nil, fmt.Errorf("%w: read body of %s: %w", model.ErrTransientServer, url, err)
	}
	if int64(len(body)) > c.maxBodySize {
		c.metrics.observe(outcomeTooLarge, c.now().Sub(start), len(body))
		return nil, fmt.Errorf("%w: body of %s exceeds %s", model.ErrMalformedContent, url,
			humanize.IBytes(uint64(c.maxBodySize))) //nolint:gosec // maxBodySize is positive
	}

	elapsed := c.now().Sub(start)
	c.metrics.observe(outcomeOK, elapsed, len(body))

	doc, err := model.NewDocument(url, body, c.now())
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched document",
		"url", url,
		"size", humanize.Bytes(uint64(len(body))),
		"elapsed", elapsed.Round(time.Millisecond),
	)

	if c.cache != nil {
		if err := c.cache.Put(ctx, doc); err != nil {
			c.logger.Warn("failed to cache document", "url", url, "error", err)
		}
	}
	return doc, nil
}

type bypassCacheKey struct{}

// WithoutCache returns a context under which Fetch skips the cache lookup.
// The downloaded document still replaces the cached copy.
func WithoutCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCacheKey{}, true)
}

func (c *Client) fromCache(ctx context.Context, url string) (*model.Document, bool) {
	if c.cache == nil {
		return nil, false
	}
	if bypass, _ := ctx.Value(bypassCacheKey{}).(bool); bypass {
		return nil, false
	}
	doc, ok, err := c.cache.Get(ctx, url, c.cacheMaxAge)
	if err != nil {
		c.logger.Warn("failed to read document cache", "url", url, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	c.metrics.cacheHit()
	c.logger.Debug("serving cached document",
		"url", url,
		"age", humanize.Time(doc.FetchedAt),
	)
	return doc, true
}

// classifyStatus maps a non-2xx status code to a sentinel error.
func classifyStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s not found", model.ErrDataUnavailable, url)
	case code >= 500:
		return fmt.Errorf("%w: GET %s: %d %s", model.ErrTransientServer, url, code, http.StatusText(code))
	default:
		return fmt.Errorf("%w: GET %s: %d %s", model.ErrMalformedContent, url, code, http.StatusText(code))
	}
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, model.ErrTransientServer)
}
