package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

var now = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

func TestDateLabel(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"earlier today", time.Date(2025, 6, 15, 0, 5, 0, 0, time.UTC), "Today"},
		{"yesterday late", time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC), "Yesterday"},
		{"same year", time.Date(2025, 6, 13, 12, 0, 0, 0, time.UTC), "Fri, Jun 13"},
		{"previous year", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), "Tue, Dec 31, 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateLabel(tt.t, now))
		})
	}
}

func TestDateLabelAcrossMonth(t *testing.T) {
	first := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday", DateLabel(time.Date(2025, 2, 28, 22, 0, 0, 0, time.UTC), first))
}

func starredAt(id int64, t time.Time) models.StarredItem {
	return models.StarredItem{ID: id, Title: "t", By: "b", StarredAt: t.UnixMilli()}
}

func TestGroupByDate(t *testing.T) {
	items := SortStarred([]models.StarredItem{
		starredAt(1, now.Add(-30*time.Hour)),
		starredAt(2, now.Add(-time.Hour)),
		starredAt(3, now.Add(-2*time.Hour)),
		starredAt(4, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}, false)

	groups := GroupByDate(items, now)

	require.Len(t, groups, 3)
	assert.Equal(t, "Today", groups[0].Label)
	assert.Equal(t, []int64{2, 3}, ids(groups[0].Items))
	assert.Equal(t, "2 stories", groups[0].CountLabel())
	assert.Equal(t, "Yesterday", groups[1].Label)
	assert.Equal(t, "1 story", groups[1].CountLabel())
	assert.Equal(t, "Sun, Jun 1", groups[2].Label)
}

func ids(items []models.StarredItem) []int64 {
	out := make([]int64, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestSortStarred(t *testing.T) {
	items := []models.StarredItem{
		{ID: 1, StarredAt: 200},
		{ID: 2, StarredAt: 100},
		{ID: 3, StarredAt: 300},
		{ID: 4, StarredAt: 200},
	}

	assert.Equal(t, []int64{3, 1, 4, 2}, ids(SortStarred(items, false)))
	assert.Equal(t, []int64{2, 1, 4, 3}, ids(SortStarred(items, true)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(items), "input must not be reordered")
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "just now", TimeAgo(now.Add(-59*time.Second), now))
	assert.Equal(t, "5m ago", TimeAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "2h ago", TimeAgo(now.Add(-150*time.Minute), now))
	assert.Equal(t, "3d ago", TimeAgo(now.Add(-80*time.Hour), now))
}

func TestMeta(t *testing.T) {
	comments := 42
	item := models.Item{Score: 128, By: "pg", Time: now.Add(-3 * time.Hour).Unix(), Descendants: &comments}
	assert.Equal(t, "128 pts · pg · 3h ago · 42 comments", Meta(item, now))

	item.Descendants = nil
	assert.Equal(t, "128 pts · pg · 3h ago", Meta(item, now))
}

func TestTitle(t *testing.T) {
	a := models.AnnotatedItem{Item: models.Item{Title: "Rust"}, Recommended: true}
	assert.Equal(t, "> Rust", Title(a))
	a.Recommended = false
	assert.Equal(t, "Rust", Title(a))
}

func TestBanner(t *testing.T) {
	assert.Equal(t, "Personalized feed active (4 starred stories)", Banner(4, true, 3))
	assert.Equal(t, "", Banner(4, false, 3))
	assert.Equal(t, "Star 2 more to enable personalization", Banner(1, false, 3))
	assert.Equal(t, "", Banner(0, false, 3))
}

func TestStarredAsItem(t *testing.T) {
	item := StarredAsItem(models.StarredItem{ID: 5, Title: "x", By: "y", URL: "https://z.io", StarredAt: 1700000000123})
	assert.Equal(t, int64(1700000000), item.Time)
	assert.Equal(t, "https://z.io", item.URL)
}
