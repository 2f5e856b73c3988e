package torznab

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed/rss"
	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/indexer/categories"
)

const defaultTimeout = 30 * time.Second

// Client talks to a single torznab endpoint, e.g. a jackett indexer.
type Client struct {
	name    string
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	mapper  *Mapper
	logger  *log.Entry
	timeout time.Duration
}

type ClientOption func(*Client)

// WithHTTPClient replaces the http client, its transport is used as is.
// The client is copied, so other options never change hc.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithMapper(m *Mapper) ClientOption {
	return func(c *Client) {
		c.mapper = m
	}
}

// WithName sets the indexer name used in logs and metrics. It defaults to the endpoint host.
func WithName(name string) ClientOption {
	return func(c *Client) {
		c.name = name
	}
}

func WithLogger(logger *log.Entry) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the api endpoint at baseURL.
func NewClient(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid indexer url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid indexer url %q: scheme and host are required", baseURL)
	}
	c := &Client{
		name:    u.Host,
		baseURL: u,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		mapper:  defaultMapper,
		logger:  log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithField("indexer", c.name)
	hc := *c.http
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	if hc.Transport == nil {
		transport, err := newTransport(c.logger)
		if err != nil {
			return nil, err
		}
		hc.Transport = transport
	}
	c.http = &hc
	return c, nil
}

func (c *Client) Name() string {
	return c.name
}

// URL returns the request url for a query, including the api key.
func (c *Client) URL(query *Query) string {
	u := *c.baseURL
	q := query.Values()
	for k, vals := range c.baseURL.Query() {
		if _, set := q[k]; !set {
			q[k] = vals
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) withKey(query *Query) *Query {
	keyed := *query
	if keyed.APIKey == "" {
		keyed.APIKey = c.apiKey
	}
	return &keyed
}

// Fetch issues a single GET for the query and returns the response body.
func (c *Client) Fetch(ctx context.Context, query *Query) ([]byte, error) {
	query = c.withKey(query)
	c.logger.WithFields(log.Fields{"query": query.String()}).Debug("Requesting indexer")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(query), nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// the url carries the api key
		if uerr, ok := err.(*url.Error); ok {
			return nil, fmt.Errorf("request to %s failed: %w", c.name, uerr.Err)
		}
		return nil, fmt.Errorf("request to %s failed: %w", c.name, err)
	}
	defer resp.Body.Close()
	requestDuration.WithLabelValues(c.name, query.Values().Get("t")).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read response from %s: %w", c.name, err)
	}
	return body, nil
}

// Get fetches a plain search in a single category.
func (c *Client) Get(ctx context.Context, cat categories.Category, q string) ([]byte, error) {
	return c.Fetch(ctx, NewQuery(q, cat))
}

// Items runs the query and parses the feed it answers with.
func (c *Client) Items(ctx context.Context, query *Query) ([]*rss.Item, error) {
	body, err := c.Fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	return parseFeed(body)
}

func parseFeed(body []byte) ([]*rss.Item, error) {
	if ierr := indexerError(body); ierr != nil {
		return nil, ierr
	}
	feed, err := (&rss.Parser{}).Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse feed: %w", err)
	}
	return feed.Items, nil
}

// indexerError returns the error document the indexer answered with, if any.
func indexerError(body []byte) *IndexerError {
	d := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := d.Token()
		if err != nil {
			return nil
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "error" {
			return nil
		}
		ierr := &IndexerError{}
		if err := d.DecodeElement(ierr, &start); err != nil {
			return nil
		}
		return ierr
	}
}

// Query runs the query and maps every item of the feed. Rejected items are part of the
// results, only failures of the request itself are returned as an error.
func (c *Client) Query(ctx context.Context, query *Query) (Results, error) {
	items, err := c.Items(ctx, query)
	if err != nil {
		requestErrors.WithLabelValues(c.name).Inc()
		return nil, err
	}
	results := c.mapper.MapAll(items).WithIndexer(c.name)
	observeResults(c.name, results)
	c.logger.
		WithFields(log.Fields{"query": query.String()}).
		Infof("Search finished: %s", results.Summary())
	return results, nil
}

// Search looks for q in a single category.
func (c *Client) Search(ctx context.Context, cat categories.Category, q string) (Results, error) {
	return c.Query(ctx, NewQuery(q, cat))
}

func (c *Client) TVSearch(ctx context.Context, q string) (Results, error) {
	return c.Search(ctx, categories.TV, q)
}

func (c *Client) MovieSearch(ctx context.Context, q string) (Results, error) {
	return c.Search(ctx, categories.Movies, q)
}

func (c *Client) AudioSearch(ctx context.Context, q string) (Results, error) {
	return c.Search(ctx, categories.Audio, q)
}

// Capabilities asks the indexer what it supports.
func (c *Client) Capabilities(ctx context.Context) (*Capabilities, error) {
	body, err := c.Fetch(ctx, &Query{Type: TypeCaps})
	if err != nil {
		return nil, err
	}
	if ierr := indexerError(body); ierr != nil {
		return nil, ierr
	}
	caps, err := ParseCapabilities(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse capabilities: %w", err)
	}
	return caps, nil
}

// Download fetches a torrent file or any other link served by the indexer.
func (c *Client) Download(ctx context.Context, link string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}
