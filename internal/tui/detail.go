package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour"

	"github.com/thomaskoefod/hackerfeed/internal/present"
	"github.com/thomaskoefod/hackerfeed/internal/recommend"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// itemURL returns the story link, or its discussion page for text posts.
func itemURL(item models.Item) string {
	if item.URL != "" {
		return item.URL
	}
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", item.ID)
}

// detailMarkdown describes item as markdown. Ask and Show HN bodies arrive
// as HTML and are converted.
func detailMarkdown(a models.AnnotatedItem, starred bool, why recommend.Breakdown, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	fmt.Fprintf(&b, "%s\n\n", present.Meta(a.Item, now))
	fmt.Fprintf(&b, "<%s>\n\n", itemURL(a.Item))
	if starred {
		b.WriteString("★ **Starred**\n\n")
	}

	if a.Text != "" {
		body, err := md.NewConverter("", true, nil).ConvertString(a.Text)
		if err != nil {
			body = a.Text
		}
		b.WriteString("---\n\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	if why.Total() > 0 {
		b.WriteString("---\n\n")
		if a.Recommended {
			b.WriteString("## Recommended for you\n\n")
		} else {
			b.WriteString("## Match with your starred stories\n\n")
		}
		if why.Keyword > 0 {
			fmt.Fprintf(&b, "- Keywords %s: **+%d**\n", strings.Join(why.MatchedKeywords, ", "), why.Keyword)
		}
		if why.Author > 0 {
			fmt.Fprintf(&b, "- Author %s: **+%d**\n", a.By, why.Author)
		}
		if why.Domain > 0 {
			fmt.Fprintf(&b, "- Domain %s: **+%d**\n", models.Domain(a.URL), why.Domain)
		}
		fmt.Fprintf(&b, "\nScore: **%d**\n", why.Total())
	}

	return b.String()
}

// renderMarkdown renders doc for the terminal, falling back to the raw text.
func renderMarkdown(doc string, dark bool, width int) string {
	style := "light"
	if dark {
		style = "dark"
	}
	if width <= 0 || width > 100 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return doc
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return doc
	}
	return out
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
