package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/neocc/internal/fetch"
	"github.com/nao1215/neocc/internal/lists"
	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/tabs"
)

// DefaultRetryDelay is the wait before the single retry of a transient
// failure.
const DefaultRetryDelay = 5 * time.Second

// Fetcher downloads one document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.Document, error)
}

// Client answers list and object queries.
type Client struct {
	fetcher    Fetcher
	endpoints  tabs.Endpoints
	retryDelay time.Duration
	metrics    *fetch.Metrics
	logger     *slog.Logger
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoints overrides the portal URLs.
func WithEndpoints(e tabs.Endpoints) Option {
	return func(c *Client) {
		c.endpoints = e
	}
}

// WithRetryDelay sets the wait before retrying a transient failure.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.retryDelay = d
		}
	}
}

// WithMetrics counts retries.
func WithMetrics(m *fetch.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client on top of f.
func New(f Fetcher, opts ...Option) *Client {
	c := &Client{
		fetcher:    f,
		endpoints:  tabs.DefaultEndpoints(),
		retryDelay: DefaultRetryDelay,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// List fetches and parses one of the NEOCC lists.
func (c *Client) List(ctx context.Context, name model.ListName) (*model.ListResult, error) {
	url, err := lists.ResolveURL(c.endpoints.Download, name)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With("request_id", c.newID(), "list", string(name))
	logger.Info("querying list", "url", url)

	var res *model.ListResult
	err = c.withRetry(ctx, logger, func(ctx context.Context) error {
		doc, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		res, err = lists.Parse(name, doc.Text)
		return err
	})
	if err != nil {
		logger.Warn("list query failed", "error", err)
		return nil, err
	}
	logger.Info("list query completed", "entries", res.Len())
	return res, nil
}

// Object fetches and parses one tab of an object. Tab arguments are
// validated before any request is made.
func (c *Client) Object(ctx context.Context, name string, tab model.Tab, opts tabs.Options) (model.TabResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: object designator is required", model.ErrInvalidSelector)
	}
	url, err := c.endpoints.ObjectURL(name, tab, opts)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With("request_id", c.newID(), "object", name, "tab", string(tab))
	logger.Info("querying object", "url", url)

	var res model.TabResult
	err = c.withRetry(ctx, logger, func(ctx context.Context) error {
		doc, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		res, err = tabs.Parse(tab, name, doc.Text, opts)
		return err
	})
	if err != nil {
		logger.Warn("object query failed", "error", err)
		return nil, err
	}
	logger.Info("object query completed")
	return res, nil
}
