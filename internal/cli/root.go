// Package cli is the moodlog command line. With no subcommand it starts the
// TUI; every other command runs one tracker operation and exits.
package cli

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/moodlog/internal/config"
	"github.com/sadopc/moodlog/internal/logger"
	"github.com/sadopc/moodlog/internal/store"
	"github.com/sadopc/moodlog/internal/tracker"
	"github.com/sadopc/moodlog/internal/tui"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// Run executes the command line in args and returns the process exit code.
func Run(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	r := &runner{cfg: cfg}
	defer r.close()

	root := r.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runner holds what the commands share: flag values and the lazily opened
// store.
type runner struct {
	cfg    *config.Config
	driver string
	dsn    string

	store   *store.Store
	svc     *tracker.Service
	closers []io.Closer
}

func (r *runner) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "moodlog",
		Short:   "Track mood, sleep and wellbeing goals from the terminal",
		Long:    `moodlog records daily mood check-ins and personal goals, and turns them into insights and exports. Run it without a command to open the interactive TUI.`,
		Version: Version,
		Args:    cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.initLogging(!isInteractive(cmd))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&r.dsn, "db", r.cfg.DBConnection, "database file path (sqlite) or DSN (pgx)")
	root.PersistentFlags().StringVar(&r.driver, "driver", r.cfg.DBDriver, "database driver: sqlite or pgx")

	root.AddCommand(
		r.tuiCmd(),
		r.logCmd(),
		r.historyCmd(),
		r.deleteCmd(),
		r.goalsCmd(),
		r.insightsCmd(),
		r.exportCmd(),
	)
	return root
}

func (r *runner) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd)
		},
	}
}

// isInteractive reports whether cmd hands the terminal to the TUI.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

func (r *runner) runTUI(cmd *cobra.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewApp(svc, r.cfg.ExportDir),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// initLogging sends records to the log file, and to stderr as well unless
// the TUI is about to take over the terminal.
func (r *runner) initLogging(console bool) error {
	_, closer, err := logger.Init(logger.Options{
		File:    r.cfg.LogFile,
		Level:   r.cfg.LogLevel,
		Console: console,
	})
	if err != nil {
		return err
	}
	r.closers = append(r.closers, closer)
	return nil
}

// service opens the store on first use.
func (r *runner) service() (*tracker.Service, error) {
	if r.svc != nil {
		return r.svc, nil
	}
	s, err := store.Open(r.driver, r.dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	r.store = s
	r.svc = tracker.NewService(s)
	return r.svc, nil
}

func (r *runner) close() {
	if r.store != nil {
		r.store.Close()
	}
	for _, c := range r.closers {
		c.Close()
	}
}
