// Package hn is a read-only client for the Hacker News Firebase API.
package hn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

var (
	// ErrNotFound is returned for ids the API answers with null, and for
	// deleted or dead items.
	ErrNotFound = errors.New("item not found")

	ErrUnknownList = errors.New("unknown story list")
)

// List names one of the ranked story lists.
type List string

const (
	ListTop  List = "top"
	ListNew  List = "new"
	ListBest List = "best"
	ListAsk  List = "ask"
	ListShow List = "show"
)

func (l List) endpoint() (string, error) {
	switch l {
	case ListTop, ListNew, ListBest, ListAsk, ListShow:
		return string(l) + "stories.json", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, string(l))
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Hacker News API error (status %d): %s", e.StatusCode, e.Body)
}

type Config struct {
	BaseURL           string
	Timeout           time.Duration
	Concurrency       int
	RequestsPerSecond float64
}

type Client struct {
	baseURL     string
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int
}

// apiItem is the wire form of an item.
type apiItem struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Descendants *int   `json:"descendants"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}

// NewClient returns a client for cfg. Zero fields take their defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}

	limit := rate.Inf
	burst := 0
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = cfg.Concurrency
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		client:      &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(limit, burst),
		concurrency: cfg.Concurrency,
	}
}

// StoryIDs returns the first limit ids of list in ranking order.
func (c *Client) StoryIDs(ctx context.Context, list List, limit int) ([]int64, error) {
	endpoint, err := list.endpoint()
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := c.get(ctx, endpoint, &ids); err != nil {
		return nil, fmt.Errorf("fetching %s stories: %w", list, err)
	}
	if limit >= 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Item fetches a single item.
func (c *Client) Item(ctx context.Context, id int64) (*models.Item, error) {
	var raw *apiItem
	if err := c.get(ctx, fmt.Sprintf("item/%d.json", id), &raw); err != nil {
		return nil, fmt.Errorf("fetching item %d: %w", id, err)
	}
	if raw == nil || raw.Deleted || raw.Dead {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	return &models.Item{
		ID:          raw.ID,
		Title:       raw.Title,
		By:          raw.By,
		URL:         raw.URL,
		Score:       raw.Score,
		Time:        raw.Time,
		Descendants: raw.Descendants,
		Type:        raw.Type,
		Text:        raw.Text,
	}, nil
}

// Stories fetches up to limit stories of list, in ranking order. Missing,
// dead and non-story items are dropped; any other failure fails the batch.
func (c *Client) Stories(ctx context.Context, list List, limit int) ([]models.Item, error) {
	ids, err := c.StoryIDs(ctx, list, limit)
	if err != nil {
		return nil, err
	}

	fetched := make([]*models.Item, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			item, err := c.Item(gctx, id)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			fetched[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(fetched))
	for _, item := range fetched {
		if item == nil || item.Type != "story" {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request to Hacker News: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
