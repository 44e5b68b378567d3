package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ngoachoi-cell/breaklistweb/internal/config"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
	"github.com/ngoachoi-cell/breaklistweb/internal/store"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	cfg    *config.Config
	root   *cobra.Command
	logger *slog.Logger

	// Flags
	backend   string
	statePath string
	dbPath    string
	verbose   bool

	svc    *schedule.Service
	closer io.Closer
}

// NewApp creates the command tree. Store flags default to the config values.
func NewApp(cfg *config.Config) *App {
	a := &App{cfg: cfg}

	a.root = &cobra.Command{
		Use:   "breaklist",
		Short: "Manage the shift break list from the command line",
		Long: `breaklist imports shift reports and edits the break list schedule
directly in the state store used by the breaklist server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.open(cmd.ErrOrStderr())
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.backend, "backend", cfg.StateBackend, "State backend: file or sqlite")
	flags.StringVar(&a.statePath, "state", cfg.StatePath, "Path of the JSON state file")
	flags.StringVar(&a.dbPath, "db", cfg.StateDBPath, "Path of the SQLite state database")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log each operation to stderr")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.sortCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.cellCmd())
	a.root.AddCommand(a.reorderCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "breaklist %s (commit: %s)\n", Version, Commit)
		},
	}
}

// open builds the schedule service on the selected backend.
func (a *App) open(logOut io.Writer) error {
	if a.svc != nil {
		return nil
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelInfo
	}
	a.logger = slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))

	var st store.Store
	switch a.backend {
	case config.BackendFile:
		fs, err := store.NewFileStore(a.statePath, a.logger)
		if err != nil {
			return err
		}
		st = fs
	case config.BackendSQLite:
		db, err := store.OpenSQLite(a.dbPath, a.cfg.StateHistory)
		if err != nil {
			return err
		}
		st, a.closer = db, db
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", a.backend, config.BackendFile, config.BackendSQLite)
	}

	repo := schedule.NewRepository(st, a.cfg.Window(), nil)
	a.svc = schedule.NewService(repo, nil, a.logger)
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the state store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
