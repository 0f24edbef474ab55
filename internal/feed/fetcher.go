package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// DefaultRSSURL is the hnrss.org mirror of the front page.
const DefaultRSSURL = "https://hnrss.org/frontpage"

var (
	pointsPattern   = regexp.MustCompile(`Points:\s*(\d+)`)
	commentsPattern = regexp.MustCompile(`#\s*Comments:\s*(\d+)`)
)

// RSSSource reads stories from an hnrss-style RSS feed.
type RSSSource struct {
	url    string
	parser *gofeed.Parser
}

// NewRSSSource returns a source for feedURL. A zero timeout leaves the
// request bounded only by the caller's context.
func NewRSSSource(feedURL string, timeout time.Duration) *RSSSource {
	if feedURL == "" {
		feedURL = DefaultRSSURL
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &RSSSource{
		url:    feedURL,
		parser: parser,
	}
}

// fetchFeed fetches and parses the RSS feed
func (s *RSSSource) fetchFeed(ctx context.Context) (*gofeed.Feed, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", s.url, err)
	}
	return feed, nil
}

// Fetch returns up to n stories from the feed, skipping entries that carry
// no story id or date.
func (s *RSSSource) Fetch(ctx context.Context, n int) ([]models.Item, error) {
	rssFeed, err := s.fetchFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	items := make([]models.Item, 0, len(rssFeed.Items))
	for _, entry := range rssFeed.Items {
		if len(items) == n {
			break
		}
		item := convertToItem(entry)
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// convertToItem converts a gofeed.Item to our Item model
func convertToItem(entry *gofeed.Item) *models.Item {
	id := storyID(entry.GUID)
	if id == 0 {
		id = storyID(entry.Link)
	}
	if id == 0 {
		return nil
	}

	// Skip entries without dates
	var created int64
	if entry.PublishedParsed != nil {
		created = entry.PublishedParsed.Unix()
	} else if entry.UpdatedParsed != nil {
		created = entry.UpdatedParsed.Unix()
	} else {
		return nil
	}

	item := &models.Item{
		ID:    id,
		Title: entry.Title,
		By:    author(entry),
		Time:  created,
		Type:  "story",
	}

	// text posts link back to their own discussion page
	if storyID(entry.Link) != id {
		item.URL = entry.Link
	}

	if m := pointsPattern.FindStringSubmatch(entry.Description); m != nil {
		item.Score, _ = strconv.Atoi(m[1])
	}
	if m := commentsPattern.FindStringSubmatch(entry.Description); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			item.Descendants = &n
		}
	}

	return item
}

// storyID extracts the id from a news.ycombinator.com/item?id= link.
func storyID(link string) int64 {
	u, err := url.Parse(link)
	if err != nil || !strings.HasSuffix(u.Hostname(), "ycombinator.com") || u.Path != "/item" {
		return 0
	}
	id, err := strconv.ParseInt(u.Query().Get("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func author(entry *gofeed.Item) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		return entry.DublinCoreExt.Creator[0]
	}
	return ""
}
