package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"eventmod/internal/config"
	"eventmod/internal/eventbus"
	"eventmod/internal/history"
	"eventmod/internal/moderation"
	"eventmod/internal/ui"
)

// options are the flags shared by every command
type options struct {
	configPath string
	view       string
	baseURL    string
	eventsFile string
	logFile    string
	timezone   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "eventmod",
		Short:        "Bulk moderation of submitted events",
		Long:         "eventmod lists submitted events grouped by month and day and lets you\napprove, reject, hold or delete many of them at once.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+filepath.Join(config.Dir(), "config.toml")+")")
	flags.StringVar(&opts.view, "view", "", "listing view: pending, all_future or other")
	flags.StringVar(&opts.baseURL, "base-url", "", "moderation service base url")
	flags.StringVar(&opts.eventsFile, "events", "", "read the event listing from a local JSON export")
	flags.StringVar(&opts.logFile, "log", "", "log file")
	flags.StringVar(&opts.timezone, "tz", "", "time zone used to group events by date")

	root.AddCommand(newHistoryCommand(opts), newCheckCommand(opts), newInitCommand(opts))
	return root
}

func configService(opts *options) config.ConfigService {
	if opts.configPath != "" {
		return config.NewConfigServiceAt(opts.configPath)
	}
	return config.NewConfigService()
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := configService(opts).Load()
	if err != nil {
		return nil, err
	}

	if opts.view != "" {
		cfg.View = opts.view
	}
	if opts.baseURL != "" {
		cfg.Service.BaseURL = opts.baseURL
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging sends the standard logger to the configured file
func setupLogging(path string) func() {
	if path == "" {
		log.SetOutput(nopWriter{})
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("Could not create log directory: %v", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(nopWriter{})
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { logFile.Close() }
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func newClient(cfg *config.Config, opts *options) (*moderation.Client, *time.Location, error) {
	loc := time.Local
	if opts.timezone != "" {
		l, err := time.LoadLocation(opts.timezone)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid time zone %q: %w", opts.timezone, err)
		}
		loc = l
	}

	clientOpts := []moderation.Option{moderation.WithLocation(loc)}
	if opts.eventsFile != "" {
		clientOpts = append(clientOpts, moderation.WithEventsFile(opts.eventsFile))
	}
	client, err := moderation.New(cfg.Service, clientOpts...)
	if err != nil {
		return nil, nil, err
	}
	return client, loc, nil
}

func openHistory(cfg *config.Config) history.Store {
	if !cfg.History.Enabled || cfg.History.Path == "" {
		return history.NewMemoryStore()
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Printf("History unavailable, keeping it in memory: %v", err)
		return history.NewMemoryStore()
	}
	return store
}

func runTUI(parent context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	// Create context for graceful shutdown
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, loc, err := newClient(cfg, opts)
	if err != nil {
		return err
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	flushSentry, err := setupSentry(cfg.SentryDSN, bus)
	if err != nil {
		log.Printf("Sentry disabled: %v", err)
	}
	defer flushSentry()

	store := openHistory(cfg)
	defer store.Close()
	unsubscribe := history.Subscribe(bus, store)
	defer unsubscribe()

	log.Printf("Starting UI (view %s, service %s)", cfg.View, cfg.Service.BaseURL)
	uiModel := ui.NewModel(bus, cfg, client)
	uiModel.SetLocation(loc)

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	_, runErr := p.Run()

	// Deliver pending journal and error events before the store closes
	bus.Close()

	if runErr != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", runErr)
		return fmt.Errorf("error running program: %w", runErr)
	}
	log.Printf("UI exited normally")
	return nil
}
