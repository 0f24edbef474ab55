// Package present holds the formatting rules shared by the TUI and the CLI.
package present

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// DateLabel names the calendar day of t relative to now: "Today",
// "Yesterday", or "Mon, Jan 2" with the year added outside the current year.
func DateLabel(t, now time.Time) string {
	t = t.In(now.Location())
	day := dayStart(t)
	today := dayStart(now)

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case t.Year() != now.Year():
		return t.Format("Mon, Jan 2, 2006")
	default:
		return t.Format("Mon, Jan 2")
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Group is a run of starred items sharing a date label.
type Group struct {
	Label string
	Items []models.StarredItem
}

// CountLabel returns "1 story" or "N stories".
func (g Group) CountLabel() string {
	if len(g.Items) == 1 {
		return "1 story"
	}
	return fmt.Sprintf("%d stories", len(g.Items))
}

// GroupByDate buckets items by the label of their star date. Groups appear
// in order of first occurrence and keep the item order within them.
func GroupByDate(items []models.StarredItem, now time.Time) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, item := range items {
		label := DateLabel(item.StarredTime(), now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// SortStarred returns items ordered by star time, newest first unless
// oldestFirst is set. Items starred at the same instant keep their order.
func SortStarred(items []models.StarredItem, oldestFirst bool) []models.StarredItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b models.StarredItem) int {
		if oldestFirst {
			return cmp.Compare(a.StarredAt, b.StarredAt)
		}
		return cmp.Compare(b.StarredAt, a.StarredAt)
	})
	return sorted
}

// TimeAgo renders the age of t as "3d ago", "5h ago", "12m ago" or "just now".
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case hours > 0:
		return fmt.Sprintf("%dh ago", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm ago", minutes)
	}
	return "just now"
}

// Meta renders "{points} pts · {by} · {age}[ · {n} comments]".
func Meta(item models.Item, now time.Time) string {
	parts := []string{
		fmt.Sprintf("%d pts", item.Score),
		item.By,
		TimeAgo(item.CreatedAt(), now),
	}
	if item.Descendants != nil {
		parts = append(parts, fmt.Sprintf("%d comments", *item.Descendants))
	}
	return strings.Join(parts, " · ")
}

// Title prefixes recommended items with "> ".
func Title(item models.AnnotatedItem) string {
	if item.Recommended {
		return "> " + item.Title
	}
	return item.Title
}

// StarredAsItem turns a starred entry into an Item for display, using the
// star time as the item time.
func StarredAsItem(s models.StarredItem) models.Item {
	return models.Item{
		ID:    s.ID,
		Title: s.Title,
		By:    s.By,
		URL:   s.URL,
		Time:  s.StarredAt / 1000,
		Type:  "story",
	}
}

// Banner returns the feed status line for the given starred count, or "".
func Banner(starredCount int, anyRecommended bool, minStarred int) string {
	switch {
	case starredCount >= minStarred && anyRecommended:
		return fmt.Sprintf("Personalized feed active (%d starred stories)", starredCount)
	case starredCount > 0 && starredCount < minStarred:
		return fmt.Sprintf("Star %d more to enable personalization", minStarred-starredCount)
	}
	return ""
}

// EmptyStarredMessage is shown when nothing has been starred.
const EmptyStarredMessage = "No starred stories yet. Star stories from the feed to see them here."
