package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/thomaskoefod/hackerfeed/internal/app"
	"github.com/thomaskoefod/hackerfeed/internal/output"
	"github.com/thomaskoefod/hackerfeed/internal/present"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

const titleWidth = 64

func newTopCmd(s *state) *cobra.Command {
	var (
		offline    bool
		jsonOutput bool
		limit      int
		list       string
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the current feed with recommendations",
		Long: `Fetch the configured story list and print it in ranking order.
Recommended stories are marked with ">", starred ones with "*".

Examples:
  hackerfeed top                  # Front page
  hackerfeed top --list ask -n 10 # First ten Ask HN stories
  hackerfeed top --offline        # Last cached snapshot
  hackerfeed top --json           # Annotated items as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit > 0 {
				s.cfg.Feed.Limit = limit
			}
			if list != "" {
				s.cfg.Feed.List = list
				if err := s.cfg.Validate(); err != nil {
					return err
				}
			}

			a, err := s.open(app.Options{Offline: offline})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			items, err := a.Reader.LoadFeed(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			return printFeed(s.printer(cmd), a.Reader, items, time.Now())
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "show the cached snapshot instead of fetching")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of stories (default from config)")
	cmd.Flags().StringVar(&list, "list", "", "story list: top, new, best, ask or show")

	return cmd
}

func printFeed(p *output.Printer, reader *app.Reader, items []models.AnnotatedItem, now time.Time) error {
	if banner := reader.Banner(items); banner != "" {
		p.Info(banner)
	}

	starred, err := reader.Starred(false)
	if err != nil {
		return err
	}
	ids := make(map[int64]bool, len(starred))
	for _, s := range starred {
		ids[s.ID] = true
	}

	table := output.NewTable(p.Out(), []string{"#", "", "TITLE", "SITE", "POINTS", "BY", "AGE"})
	for i, a := range items {
		mark := ""
		switch {
		case ids[a.ID]:
			mark = "*"
		case a.Recommended:
			mark = ">"
		}

		title := output.Truncate(a.Title, titleWidth)
		if a.Recommended {
			title = p.Highlight(title)
		}

		table.AddRow(
			strconv.Itoa(i+1),
			mark,
			title,
			models.Domain(a.URL),
			strconv.Itoa(a.Score),
			a.By,
			present.TimeAgo(a.CreatedAt(), now),
		)
	}
	return table.Render()
}
