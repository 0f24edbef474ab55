package models

import (
	"net/url"
	"strings"
	"time"
)

// Item is a single story as supplied by a feed source.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	By          string `json:"by"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score"`
	Time        int64  `json:"time"`
	Descendants *int   `json:"descendants,omitempty"`
	Type        string `json:"type,omitempty"`
	Text        string `json:"text,omitempty"`
}

// CreatedAt returns the item creation time.
func (i Item) CreatedAt() time.Time {
	return time.Unix(i.Time, 0)
}

// StarredItem is a user-favorited item. The JSON layout matches the
// browser storage value of the web client so exported sets can be imported.
type StarredItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	By        string `json:"by"`
	Domain    string `json:"domain,omitempty"`
	StarredAt int64  `json:"starredAt"`
}

// NewStarredItem derives a StarredItem from item, stamped with at.
func NewStarredItem(item Item, at time.Time) StarredItem {
	return StarredItem{
		ID:        item.ID,
		Title:     item.Title,
		URL:       item.URL,
		By:        item.By,
		Domain:    Domain(item.URL),
		StarredAt: at.UnixMilli(),
	}
}

// StarredTime returns the star time.
func (s StarredItem) StarredTime() time.Time {
	return time.UnixMilli(s.StarredAt)
}

// AnnotatedItem is an Item with its recommendation annotation.
type AnnotatedItem struct {
	Item
	RecommendationScore int  `json:"recommendationScore"`
	Recommended         bool `json:"isRecommended"`
}

// Domain returns the host of rawURL with a leading "www." removed.
// Unparseable URLs and URLs without a host yield "".
func Domain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
