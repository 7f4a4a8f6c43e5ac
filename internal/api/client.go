package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	firebaseURL    = "https://hacker-news.firebaseio.com/v0"
	algoliaURL     = "https://hn.algolia.com/api/v1"
	siteURL        = "https://news.ycombinator.com"
	userAgent      = "threadtree/1.0"
	requestTimeout = 10 * time.Second
	maxConcurrent  = 10
)

// ErrNotFound is returned when the API has no such item.
var ErrNotFound = errors.New("item not found")

// Client is the HN API client.
type Client struct {
	http       *http.Client
	baseURL    string
	algoliaURL string
	siteURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoints points the client at other hosts. Empty values keep the
// defaults.
func WithEndpoints(firebase, algolia, site string) Option {
	return func(c *Client) {
		if firebase != "" {
			c.baseURL = firebase
		}
		if algolia != "" {
			c.algoliaURL = algolia
		}
		if site != "" {
			c.siteURL = site
		}
	}
}

// NewClient creates a new HN API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:    firebaseURL,
		algoliaURL: algoliaURL,
		siteURL:    siteURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches a URL and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("fetching %s: %w", url, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// GetItem fetches a single item by ID. Firebase answers unknown IDs with a
// JSON null, which is reported as ErrNotFound.
func (c *Client) GetItem(ctx context.Context, id int) (*Item, error) {
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	var item *Item
	if err := c.get(ctx, url, &item); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return item, nil
}

// BatchGetItems fetches multiple items concurrently with a concurrency limit.
// Returns items in the same order as the input IDs. Failed fetches are nil.
func (c *Client) BatchGetItems(ctx context.Context, ids []int) ([]*Item, error) {
	results := make([]*Item, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			item, err := c.GetItem(gctx, id)
			if err != nil {
				// Non-fatal: individual items can fail.
				log.Printf("fetching item %d: %v", id, err)
				return nil
			}
			mu.Lock()
			results[i] = item
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled fetch is logged and skipped like any other failure; the
	// caller still needs to know the whole batch was cut short.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
