package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/faizmokh/mood/internal/config"
	"github.com/faizmokh/mood/internal/files"
	"github.com/faizmokh/mood/internal/kv"
	"github.com/faizmokh/mood/internal/moodlog"
	"github.com/faizmokh/mood/internal/newsletter"
	"github.com/faizmokh/mood/internal/ui"
	"github.com/faizmokh/mood/internal/version"
)

// Deps carries the collaborators every command shares.
type Deps struct {
	Backend    kv.Store
	Config     config.Config
	Logger     *log.Logger
	Manager    *files.Manager
	Subscriber newsletter.Subscriber
	Rand       *rand.Rand
	Now        func() time.Time
}

func (d Deps) store(logger *log.Logger) *moodlog.Store {
	return moodlog.NewStore(d.Backend,
		moodlog.WithKey(d.Config.Key),
		moodlog.WithLogger(logger),
	)
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) window(flag int) int {
	if flag > 0 {
		return flag
	}
	return d.Config.Window
}

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mood",
		Short:   "Track how you feel each day and look back on it from your terminal.",
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(ctx, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newLogCommand(ctx, deps),
		newHistoryCommand(ctx, deps),
		newChartCommand(ctx, deps),
		newQuoteCommand(deps),
		newSubscribeCommand(ctx, deps),
		newVersionCommand(),
	)

	return cmd
}

// runTUI logs to a file under the data directory; stderr belongs to the screen.
func runTUI(ctx context.Context, deps Deps) error {
	logFile, err := deps.Manager.OpenAppend(deps.Config.Log.File)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{
		Level:           deps.Logger.GetLevel(),
		Prefix:          "tui",
		ReportTimestamp: true,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := ui.NewModel(runCtx, ui.Options{
		Store:      deps.store(logger),
		Subscriber: deps.Subscriber,
		Logger:     logger,
		Rand:       deps.Rand,
		Now:        deps.Now,
		Window:     deps.Config.Window,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// ExecuteCommand resolves configuration, opens the configured backend and
// executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	home, err := files.ResolveBasePath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(home)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "mood",
	})

	manager, err := files.NewManager(cfg.Home)
	if err != nil {
		return err
	}
	backend, err := kv.Open(cfg.Backend, manager)
	if err != nil {
		return err
	}
	defer backend.Close()
	logger.Debug("opened backend", "backend", cfg.Backend, "home", manager.BasePath())

	deps := Deps{
		Backend: backend,
		Config:  cfg,
		Logger:  logger,
		Manager: manager,
		Subscriber: newsletter.NewEmailJSClient(newsletter.Config{
			Endpoint:   cfg.Newsletter.Endpoint,
			ServiceID:  cfg.Newsletter.ServiceID,
			TemplateID: cfg.Newsletter.TemplateID,
			PublicKey:  cfg.Newsletter.PublicKey,
			Timeout:    cfg.Newsletter.Timeout,
		}, nil),
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:  time.Now,
	}
	return NewRootCommand(ctx, deps).Execute()
}

// Main is a helper used by cmd/mood/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
