package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/thomaskoefod/hackerfeed/internal/app"
	"github.com/thomaskoefod/hackerfeed/internal/config"
	"github.com/thomaskoefod/hackerfeed/internal/export"
	"github.com/thomaskoefod/hackerfeed/internal/present"
)

func newExportCmd(s *state) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write starred stories to a CSV file",
		Long: `Write the starred stories to hn_starred_YYYY-MM-DD.csv with the columns
Title, URL, Author, Domain and Starred Date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = s.cfg.UI.ExportDir
			}

			a, err := s.open(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			items, err := a.Reader.Starred(s.cfg.UI.StarredSort == config.SortOldest)
			if err != nil {
				return err
			}

			p := s.printer(cmd)
			path, err := export.ToDir(dir, items, time.Now())
			if errors.Is(err, export.ErrNothingToExport) {
				p.Warning("Nothing to export yet. Star some stories first.")
				return nil
			}
			if err != nil {
				return err
			}

			p.Success("Exported %s to %s", present.Group{Items: items}.CountLabel(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "out", "o", "", "output directory (default from config)")

	return cmd
}
