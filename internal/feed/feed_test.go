package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaskoefod/hackerfeed/internal/database"
	"github.com/thomaskoefod/hackerfeed/internal/hn"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

const frontpageRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Hacker News: Front Page</title>
<link>https://news.ycombinator.com/</link>
<item>
  <title>Show HN: A tiny database</title>
  <description><![CDATA[<p>Article URL: <a href="https://tiny.dev/db">https://tiny.dev/db</a></p><p>Points: 142</p><p># Comments: 37</p>]]></description>
  <pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
  <link>https://tiny.dev/db</link>
  <dc:creator>alice</dc:creator>
  <comments>https://news.ycombinator.com/item?id=1001</comments>
  <guid isPermaLink="false">https://news.ycombinator.com/item?id=1001</guid>
</item>
<item>
  <title>Ask HN: How do you read papers?</title>
  <description><![CDATA[<p>Points: 12</p><p># Comments: 4</p>]]></description>
  <pubDate>Mon, 01 Jan 2024 09:00:00 +0000</pubDate>
  <link>https://news.ycombinator.com/item?id=1002</link>
  <dc:creator>bob</dc:creator>
  <guid isPermaLink="false">https://news.ycombinator.com/item?id=1002</guid>
</item>
<item>
  <title>Undated entry</title>
  <link>https://news.ycombinator.com/item?id=1003</link>
  <guid isPermaLink="false">https://news.ycombinator.com/item?id=1003</guid>
</item>
<item>
  <title>Foreign entry</title>
  <pubDate>Mon, 01 Jan 2024 08:00:00 +0000</pubDate>
  <link>https://example.com/x</link>
  <guid>https://example.com/x</guid>
</item>
</channel>
</rss>`

func rssServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(frontpageRSS))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRSSSourceFetch(t *testing.T) {
	src := NewRSSSource(rssServer(t, http.StatusOK).URL, time.Second)

	items, err := src.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	show := items[0]
	assert.Equal(t, int64(1001), show.ID)
	assert.Equal(t, "alice", show.By)
	assert.Equal(t, "https://tiny.dev/db", show.URL)
	assert.Equal(t, 142, show.Score)
	require.NotNil(t, show.Descendants)
	assert.Equal(t, 37, *show.Descendants)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC).Unix(), show.Time)

	ask := items[1]
	assert.Equal(t, int64(1002), ask.ID)
	assert.Empty(t, ask.URL)
	assert.Equal(t, "bob", ask.By)
}

func TestRSSSourceLimit(t *testing.T) {
	src := NewRSSSource(rssServer(t, http.StatusOK).URL, time.Second)

	items, err := src.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRSSSourceFailure(t *testing.T) {
	src := NewRSSSource(rssServer(t, http.StatusInternalServerError).URL, time.Second)

	_, err := src.Fetch(context.Background(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRSSSourceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	start := time.Now()
	_, err := NewRSSSource(srv.URL, 50*time.Millisecond).Fetch(context.Background(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStoryID(t *testing.T) {
	assert.Equal(t, int64(42), storyID("https://news.ycombinator.com/item?id=42"))
	assert.Zero(t, storyID("https://news.ycombinator.com/user?id=pg"))
	assert.Zero(t, storyID("https://example.com/item?id=42"))
	assert.Zero(t, storyID("not a url"))
}

func TestAPISourceWrapsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewAPISource(hn.NewClient(hn.Config{BaseURL: srv.URL}), hn.ListTop)
	_, err := src.Fetch(context.Background(), 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	var statusErr *hn.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

type stubSource struct {
	items []models.Item
	err   error
}

func (s stubSource) Fetch(context.Context, int) ([]models.Item, error) {
	return s.items, s.err
}

func TestCachedSource(t *testing.T) {
	db, err := database.New(database.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	items := []models.Item{{ID: 2, Title: "b", By: "x", Type: "story"}, {ID: 1, Title: "a", By: "y", Type: "story"}}
	cached := NewCachedSource(stubSource{items: items}, db, time.Hour, zerolog.Nop())

	_, err = cached.Offline().Fetch(context.Background(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)

	got, err := cached.Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	offline, err := cached.Offline().Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, items[:1], offline)
}

func TestCachedSourceKeepsSnapshotOnFailure(t *testing.T) {
	db, err := database.New(database.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.ReplaceItems([]models.Item{{ID: 1, Title: "a", By: "y"}}, time.Now()))
	cached := NewCachedSource(stubSource{err: ErrUnavailable}, db, time.Hour, zerolog.Nop())

	_, err = cached.Fetch(context.Background(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)

	offline, err := cached.Offline().Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, offline, 1)
}
