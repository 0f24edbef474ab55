package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/thomaskoefod/hackerfeed/internal/present"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// storyItem is a feed row.
type storyItem struct {
	story   models.AnnotatedItem
	starred bool
	now     time.Time
}

func (i storyItem) Title() string {
	title := present.Title(i.story)
	if i.starred {
		title = "★ " + title
	}
	if domain := models.Domain(i.story.URL); domain != "" {
		title += fmt.Sprintf(" (%s)", domain)
	}
	return title
}

func (i storyItem) Description() string {
	return present.Meta(i.story.Item, i.now)
}

func (i storyItem) FilterValue() string {
	return i.story.Title
}

// groupItem is a collapsible date header in the starred view.
type groupItem struct {
	group     present.Group
	collapsed bool
}

func (i groupItem) Title() string {
	if i.collapsed {
		return "▸ " + i.group.Label
	}
	return "▾ " + i.group.Label
}

func (i groupItem) Description() string {
	return i.group.CountLabel()
}

func (i groupItem) FilterValue() string {
	return i.group.Label
}

// starredItem is a starred story under a date header.
type starredItem struct {
	item models.StarredItem
	now  time.Time
}

func (i starredItem) Title() string {
	if i.item.Domain != "" {
		return fmt.Sprintf("  %s (%s)", i.item.Title, i.item.Domain)
	}
	return "  " + i.item.Title
}

func (i starredItem) Description() string {
	return fmt.Sprintf("  by %s · starred %s", i.item.By, present.TimeAgo(i.item.StarredTime(), i.now))
}

func (i starredItem) FilterValue() string {
	return i.item.Title
}

var (
	_ list.DefaultItem = storyItem{}
	_ list.DefaultItem = groupItem{}
	_ list.DefaultItem = starredItem{}
)

// feedItems builds the feed rows, marking the ids in starred.
func feedItems(items []models.AnnotatedItem, starred map[int64]struct{}, now time.Time) []list.Item {
	rows := make([]list.Item, len(items))
	for i, a := range items {
		_, on := starred[a.ID]
		rows[i] = storyItem{story: a, starred: on, now: now}
	}
	return rows
}

// starredRows builds the grouped starred rows, hiding the members of
// collapsed groups.
func starredRows(groups []present.Group, collapsed map[string]bool, now time.Time) []list.Item {
	var rows []list.Item
	for _, g := range groups {
		c := collapsed[g.Label]
		rows = append(rows, groupItem{group: g, collapsed: c})
		if c {
			continue
		}
		for _, s := range g.Items {
			rows = append(rows, starredItem{item: s, now: now})
		}
	}
	return rows
}
