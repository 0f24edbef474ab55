package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/thomaskoefod/hackerfeed/internal/app"
	"github.com/thomaskoefod/hackerfeed/internal/config"
	"github.com/thomaskoefod/hackerfeed/internal/hn"
	"github.com/thomaskoefod/hackerfeed/internal/output"
	"github.com/thomaskoefod/hackerfeed/internal/present"
)

func newStarredCmd(s *state) *cobra.Command {
	var (
		oldest     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "starred",
		Aliases: []string{"ls"},
		Short:   "List starred stories grouped by date",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("oldest") {
				oldest = s.cfg.UI.StarredSort == config.SortOldest
			}
			items, err := a.Reader.Starred(oldest)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			p := s.printer(cmd)
			if len(items) == 0 {
				p.Info(present.EmptyStarredMessage)
				return nil
			}

			for _, g := range present.GroupByDate(items, time.Now()) {
				p.Header(fmt.Sprintf("%s · %s", g.Label, g.CountLabel()))
				table := output.NewTable(p.Out(), []string{"ID", "TITLE", "SITE", "BY"})
				for _, item := range g.Items {
					table.AddRow(strconv.FormatInt(item.ID, 10), output.Truncate(item.Title, titleWidth), item.Domain, item.By)
				}
				if err := table.Render(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oldest, "oldest", false, "oldest first (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func newStarCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "star <id>",
		Short: "Star a story by its Hacker News id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := s.open(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			p := s.printer(cmd)
			on, err := a.Reader.IsStarred(id)
			if err != nil {
				return err
			}
			if on {
				p.Info("Story %d is already starred", id)
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			item, err := a.Client.Item(ctx, id)
			if errors.Is(err, hn.ErrNotFound) {
				return fmt.Errorf("story %d does not exist or was removed", id)
			}
			if err != nil {
				return err
			}

			if err := a.Reader.Star(*item); err != nil {
				return fmt.Errorf("starring story %d: %w", id, err)
			}
			p.Success("Starred %d: %s", id, item.Title)
			return nil
		},
	}
}

func newUnstarCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "unstar <id>",
		Short: "Remove a story from the starred list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := s.open(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			p := s.printer(cmd)
			on, err := a.Reader.IsStarred(id)
			if err != nil {
				return err
			}
			if !on {
				p.Warning("Story %d is not starred", id)
				return nil
			}

			if err := a.Reader.Unstar(id); err != nil {
				return fmt.Errorf("unstarring story %d: %w", id, err)
			}
			p.Success("Unstarred %d", id)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid story id %q", arg)
	}
	return id, nil
}
