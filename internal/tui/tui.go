// Package tui is the interactive Hacker News reader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/thomaskoefod/hackerfeed/internal/app"
	"github.com/thomaskoefod/hackerfeed/internal/config"
	"github.com/thomaskoefod/hackerfeed/internal/export"
	"github.com/thomaskoefod/hackerfeed/internal/present"
	"github.com/thomaskoefod/hackerfeed/internal/recommend"
	"github.com/thomaskoefod/hackerfeed/internal/starred"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

type View int

const (
	ViewFeed View = iota
	ViewStarred
	ViewDetail
	ViewAbout
	ViewHelp
)

const loadTimeout = 30 * time.Second

type Model struct {
	reader  *app.Reader
	cfg     *config.Config
	cfgPath string
	log     zerolog.Logger
	now     func() time.Time

	view View
	back View

	feed       list.Model
	starred    list.Model
	items      []models.AnnotatedItem
	starredIDs map[int64]struct{}
	hasStarred bool
	collapsed  map[string]bool
	banner     string

	detail string
	styles styles
	width  int
	height int
	err    error
	status string
}

type feedLoadedMsg struct {
	items []models.AnnotatedItem
	err   error
}

type starToggledMsg struct {
	id    int64
	title string
	on    bool
	items []models.AnnotatedItem
}

type exportedMsg struct {
	path  string
	count int
}

type errorMsg struct {
	err error
}

type statusMsg string

// New creates the reader UI. cfgPath is where theme changes are saved; an
// empty path keeps them in memory.
func New(reader *app.Reader, cfg *config.Config, cfgPath string, logger zerolog.Logger) Model {
	feed := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	feed.Title = "Hacker News · " + cfg.Feed.List
	feed.SetShowStatusBar(true)
	feed.SetFilteringEnabled(true)
	feed.SetShowHelp(false)

	starredList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	starredList.Title = "Starred"
	starredList.SetShowStatusBar(false)
	starredList.SetFilteringEnabled(true)
	starredList.SetShowHelp(false)

	m := Model{
		reader:     reader,
		cfg:        cfg,
		cfgPath:    cfgPath,
		log:        logger.With().Str("component", "tui").Logger(),
		now:        time.Now,
		view:       ViewFeed,
		feed:       feed,
		starred:    starredList,
		starredIDs: map[int64]struct{}{},
		collapsed:  map[string]bool{},
		styles:     newStyles(cfg.UI.DarkMode),
	}
	m.styles.applyList(&m.feed)
	m.styles.applyList(&m.starred)
	return m
}

// Run starts the program on the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadFeed(),
		func() tea.Msg { return statusMsg("Loading stories...") },
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feed.SetSize(msg.Width, msg.Height-3)
		m.starred.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case feedLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
		} else {
			m.err = nil
			m.status = fmt.Sprintf("Loaded %d stories", len(msg.items))
		}
		m.setItems(msg.items)
		return m, nil

	case starToggledMsg:
		m.err = nil
		if msg.on {
			m.status = "Starred: " + msg.title
		} else {
			m.status = "Unstarred: " + msg.title
		}
		m.setItems(msg.items)
		if m.view == ViewDetail {
			if a, ok := m.selectedStory(); ok && a.ID == msg.id {
				m.detail = m.renderDetail(a)
			} else {
				m.view = m.back
				m.detail = ""
			}
		}
		return m, nil

	case exportedMsg:
		m.err = nil
		if msg.count == 1 {
			m.status = "Exported 1 story to " + msg.path
		} else {
			m.status = fmt.Sprintf("Exported %d stories to %s", msg.count, msg.path)
		}
		return m, nil

	case errorMsg:
		m.err = msg.err
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewFeed:
		m.feed, cmd = m.feed.Update(msg)
	case ViewStarred:
		m.starred, cmd = m.starred.Update(msg)
	}
	return m, cmd
}

// setItems replaces the feed rows and refreshes everything derived from the
// starred set. The feed cursor stays on the same row.
func (m *Model) setItems(items []models.AnnotatedItem) {
	m.items = items
	m.refreshStarred()

	index := m.feed.Index()
	m.feed.SetItems(feedItems(items, m.starredIDs, m.now()))
	if index < len(items) {
		m.feed.Select(index)
	}
	m.banner = m.reader.Banner(items)
}

func (m *Model) refreshStarred() {
	items, err := m.reader.Starred(m.cfg.UI.StarredSort == config.SortOldest)
	if err != nil {
		m.log.Warn().Err(err).Msg("reading starred items")
		m.err = err
		return
	}
	m.starredIDs = starred.IDs(items)
	m.hasStarred = len(items) > 0

	index := m.starred.Index()
	rows := starredRows(present.GroupByDate(items, m.now()), m.collapsed, m.now())
	m.starred.SetItems(rows)
	if index < len(rows) {
		m.starred.Select(index)
	}
}

func (m Model) filtering() bool {
	switch m.view {
	case ViewFeed:
		return m.feed.FilterState() == list.Filtering
	case ViewStarred:
		return m.starred.FilterState() == list.Filtering
	}
	return false
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.filtering() {
		return m.updateList(msg)
	}

	switch m.view {
	case ViewFeed, ViewStarred:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewAbout, ViewHelp:
		return m.handleOverlayKeys(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ViewStarred {
		m.starred, cmd = m.starred.Update(msg)
	} else {
		m.feed, cmd = m.feed.Update(msg)
	}
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		if m.view == ViewFeed {
			m.view = ViewStarred
			m.refreshStarred()
		} else {
			m.view = ViewFeed
		}
		return m, nil

	case "enter":
		return m.openSelected()

	case "s":
		if item, ok := m.selectedItem(); ok {
			return m, m.toggleStar(item)
		}
		return m, nil

	case "o":
		if item, ok := m.selectedItem(); ok {
			return m, m.openInBrowser(item)
		}
		return m, nil

	case "r":
		if m.view == ViewStarred {
			m.refreshStarred()
			return m, nil
		}
		return m, tea.Batch(
			m.loadFeed(),
			func() tea.Msg { return statusMsg("Refreshing stories...") },
		)

	case "O":
		if m.cfg.UI.StarredSort == config.SortOldest {
			m.cfg.UI.StarredSort = config.SortNewest
		} else {
			m.cfg.UI.StarredSort = config.SortOldest
		}
		m.refreshStarred()
		m.status = "Starred order: " + m.cfg.UI.StarredSort
		return m, m.saveConfig()

	case "d":
		m.cfg.UI.DarkMode = !m.cfg.UI.DarkMode
		m.styles = newStyles(m.cfg.UI.DarkMode)
		m.styles.applyList(&m.feed)
		m.styles.applyList(&m.starred)
		if m.cfg.UI.DarkMode {
			m.status = "Dark mode on"
		} else {
			m.status = "Dark mode off"
		}
		return m, m.saveConfig()

	case "e":
		return m, m.exportStarred()

	case "a":
		m.back = m.view
		m.view = ViewAbout
		return m, nil

	case "?":
		m.back = m.view
		m.view = ViewHelp
		return m, nil
	}

	return m.updateList(msg)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.view = m.back
		m.detail = ""
		return m, nil

	case "o":
		if item, ok := m.selectedItem(); ok {
			return m, m.openInBrowser(item)
		}

	case "s":
		if item, ok := m.selectedItem(); ok {
			return m, m.toggleStar(item)
		}

	case "?":
		m.view = ViewHelp
		return m, nil
	}
	return m, nil
}

func (m Model) handleOverlayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "a", "q":
		if m.detail != "" {
			m.view = ViewDetail
		} else {
			m.view = m.back
		}
	}
	return m, nil
}

// listView returns the list the user is working in. Overlays and the
// detail view keep the list they were opened from.
func (m Model) listView() View {
	if m.view == ViewFeed || m.view == ViewStarred {
		return m.view
	}
	return m.back
}

func (m Model) activeSelection() list.Item {
	if m.listView() == ViewStarred {
		return m.starred.SelectedItem()
	}
	return m.feed.SelectedItem()
}

// selectedStory returns the story under the cursor in the active list.
func (m Model) selectedStory() (models.AnnotatedItem, bool) {
	switch row := m.activeSelection().(type) {
	case storyItem:
		return row.story, true
	case starredItem:
		return models.AnnotatedItem{Item: present.StarredAsItem(row.item)}, true
	}
	return models.AnnotatedItem{}, false
}

func (m Model) selectedItem() (models.Item, bool) {
	a, ok := m.selectedStory()
	return a.Item, ok
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	switch row := m.activeSelection().(type) {
	case groupItem:
		m.collapsed[row.group.Label] = !row.collapsed
		m.refreshStarred()
		return m, nil

	case storyItem, starredItem:
		a, _ := m.selectedStory()
		m.back = m.view
		m.view = ViewDetail
		m.detail = m.renderDetail(a)
		return m, nil
	}
	return m, nil
}

func (m Model) renderDetail(a models.AnnotatedItem) string {
	_, on := m.starredIDs[a.ID]
	doc := detailMarkdown(a, on, m.reader.Explain(a.Item), m.now())
	return renderMarkdown(doc, m.cfg.UI.DarkMode, m.width)
}

func (m Model) loadFeed() tea.Cmd {
	reader := m.reader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		items, err := reader.LoadFeed(ctx)
		return feedLoadedMsg{items: items, err: err}
	}
}

func (m Model) toggleStar(item models.Item) tea.Cmd {
	reader := m.reader
	return func() tea.Msg {
		on, items, err := reader.ToggleStar(item)
		if err != nil {
			return errorMsg{fmt.Errorf("updating star: %w", err)}
		}
		return starToggledMsg{id: item.ID, title: item.Title, on: on, items: items}
	}
}

func (m Model) openInBrowser(item models.Item) tea.Cmd {
	url := itemURL(item)
	return func() tea.Msg {
		if err := openBrowser(url); err != nil {
			return errorMsg{fmt.Errorf("opening browser: %w", err)}
		}
		return statusMsg("Opened in browser")
	}
}

func (m Model) exportStarred() tea.Cmd {
	reader := m.reader
	dir := m.cfg.UI.ExportDir
	oldest := m.cfg.UI.StarredSort == config.SortOldest
	now := m.now()
	return func() tea.Msg {
		items, err := reader.Starred(oldest)
		if err != nil {
			return errorMsg{err}
		}
		path, err := export.ToDir(dir, items, now)
		if errors.Is(err, export.ErrNothingToExport) {
			return statusMsg("Nothing to export yet. Star some stories first.")
		}
		if err != nil {
			return errorMsg{err}
		}
		return exportedMsg{path: path, count: len(items)}
	}
}

func (m Model) saveConfig() tea.Cmd {
	if m.cfgPath == "" {
		return nil
	}
	ui := m.cfg.UI
	path := m.cfgPath
	return func() tea.Msg {
		if err := config.SaveUI(path, ui); err != nil {
			return errorMsg{err}
		}
		return nil
	}
}

func (m Model) View() string {
	switch m.view {
	case ViewFeed:
		return m.renderFeed()
	case ViewStarred:
		return m.renderStarred()
	case ViewDetail:
		return m.renderDetailView()
	case ViewAbout:
		return m.renderAbout()
	case ViewHelp:
		return m.renderHelp()
	}
	return ""
}

func (m Model) renderFeed() string {
	var s strings.Builder

	if m.banner != "" {
		s.WriteString(m.styles.banner.Render(m.banner))
	}
	s.WriteString("\n")
	s.WriteString(m.feed.View())
	s.WriteString("\n")
	s.WriteString(m.renderStatus())
	s.WriteString("\n")
	s.WriteString(m.styles.help.Render("enter: read • s: star • o: open • r: refresh • tab: starred • d: theme • a: about • ?: help • q: quit"))

	return s.String()
}

func (m Model) renderStarred() string {
	var s strings.Builder

	s.WriteString("\n")
	if !m.hasStarred {
		s.WriteString(m.styles.title.Render("Starred"))
		s.WriteString("\n")
		s.WriteString(m.styles.empty.Render(present.EmptyStarredMessage))
	} else {
		s.WriteString(m.starred.View())
	}
	s.WriteString("\n")
	s.WriteString(m.renderStatus())
	s.WriteString("\n")
	s.WriteString(m.styles.help.Render("enter: read/collapse • s: unstar • o: open • O: order • e: export csv • tab: feed • ?: help • q: quit"))

	return s.String()
}

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(m.detail)
	s.WriteString("\n")
	s.WriteString(m.renderStatus())
	s.WriteString("\n")
	s.WriteString(m.styles.help.Render("s: star/unstar • o: open in browser • esc: back • ?: help • q: quit"))

	return s.String()
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return m.styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return m.styles.status.Render(m.status)
}

func (m Model) renderAbout() string {
	about := fmt.Sprintf(`
How recommendations work

Star stories you like. Once you have starred %d, every story in the feed is
scored against them:

  • each title keyword you have starred before    +%d per starred occurrence
  • an author you have starred before             +%d per starred story
  • a site you have starred before                +%d per starred story

Common words and words shorter than three letters are ignored. Stories in the
top 30%% of scores among those you have not starred are marked with "> ".
Everything is computed locally from your starred list.
`, recommend.MinStarred, recommend.KeywordWeight, recommend.AuthorWeight, recommend.DomainWeight)

	return m.styles.detailTitle.Render("About hackerfeed") + about + "\n" + m.styles.help.Render("Press a or esc to close")
}

func (m Model) renderHelp() string {
	help := `
hackerfeed - Keyboard Shortcuts

Feed:
  ↑/↓, j/k     Navigate stories
  enter        Show story details
  s            Star or unstar story
  o            Open story in browser
  r            Reload the feed
  /            Filter stories
  tab          Switch to starred stories

Starred:
  enter        Show details, or collapse a date group
  s            Unstar story
  O            Toggle newest/oldest first
  e            Export starred stories as CSV
  tab          Back to the feed

General:
  d            Toggle dark mode
  a            About recommendations
  ?            Show/hide this help
  q, ctrl+c    Quit
`
	return help + "\n" + m.styles.help.Render("Press ? or esc to close help")
}
