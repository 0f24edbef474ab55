// Package cli contains the hackerfeed commands
package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thomaskoefod/hackerfeed/internal/app"
	"github.com/thomaskoefod/hackerfeed/internal/config"
	"github.com/thomaskoefod/hackerfeed/internal/logging"
	"github.com/thomaskoefod/hackerfeed/internal/output"
	"github.com/thomaskoefod/hackerfeed/internal/tui"
)

// state is shared by every command of one invocation
type state struct {
	cfgFile string
	verbose bool
	noColor bool
	offline bool
	version string

	cfgPath string
	cfg     *config.Config
	logger  zerolog.Logger
	logFile io.Closer
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	s := &state{version: version}

	root := &cobra.Command{
		Use:   "hackerfeed",
		Short: "Hacker News reader with local recommendations",
		Long: `hackerfeed reads the Hacker News front page in your terminal.

Star the stories you like. Once three are starred, the feed marks the
stories that best match your starred titles, authors and sites.

Example usage:
  hackerfeed                   # Open the interactive reader
  hackerfeed --offline         # Browse the last cached feed
  hackerfeed top               # Print the current feed
  hackerfeed star 8863         # Star a story by id
  hackerfeed starred           # List starred stories by date
  hackerfeed export            # Write starred stories to CSV`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if s.logFile != nil {
				return s.logFile.Close()
			}
			return nil
		},
		RunE: s.runTUI,
	}

	root.PersistentFlags().StringVar(&s.cfgFile, "config", "", "config file (default is ~/.config/hackerfeed/config.yaml)")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVar(&s.noColor, "no-color", false, "disable colored output")
	root.Flags().BoolVar(&s.offline, "offline", false, "read the cached feed snapshot instead of fetching")

	root.AddCommand(
		newTopCmd(s),
		newStarredCmd(s),
		newStarCmd(s),
		newUnstarCmd(s),
		newExportCmd(s),
		newVersionCmd(s),
	)

	return root
}

// init loads configuration and sets up logging. The interactive reader owns
// the terminal, so it logs to the configured file; other commands log to
// stderr.
func (s *state) init(cmd *cobra.Command) error {
	s.cfgPath = s.cfgFile
	if s.cfgPath == "" {
		s.cfgPath = config.DefaultConfigPath()
	}

	cfg, err := config.Load(s.cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	s.cfg = cfg

	level := cfg.Logging.Level
	if s.verbose {
		level = "debug"
	}
	logCfg := logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	}
	if !cmd.HasParent() {
		logCfg.File = cfg.Logging.File
	}

	closer, err := logging.Init(logCfg)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	s.logFile = closer
	s.logger = logging.Logger()

	s.logger.Debug().
		Str("config", s.cfgPath).
		Str("source", cfg.Feed.Source).
		Str("backend", cfg.Storage.Backend).
		Msg("configuration loaded")

	return nil
}

func (s *state) printer(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ColorsEnabled(s.noColor))
}

func (s *state) open(opts app.Options) (*app.App, error) {
	a, err := app.Open(s.cfg, opts, s.logger)
	if err != nil {
		return nil, fmt.Errorf("opening hackerfeed: %w", err)
	}
	return a, nil
}

func (s *state) runTUI(cmd *cobra.Command, args []string) error {
	a, err := s.open(app.Options{Offline: s.offline})
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(tui.New(a.Reader, s.cfg, s.cfgPath, s.logger))
}
