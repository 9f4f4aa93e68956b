package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ewhitmore/taskdeck/internal/app"
	"github.com/ewhitmore/taskdeck/internal/config"
	"github.com/ewhitmore/taskdeck/internal/services/api"
	"github.com/spf13/cobra"
)

var (
	flagAPIURL  string
	flagProject string
	flagLogFile string
)

func main() {
	root := &cobra.Command{
		Use:   "taskdeck",
		Short: "Kanban task board TUI",
		Long:  "taskdeck is a terminal kanban board backed by a remote task service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	root.Flags().StringVar(&flagAPIURL, "api-url", "", "task service base URL (overrides config)")
	root.Flags().StringVar(&flagProject, "project", "", "project to open (overrides registry default)")
	root.Flags().StringVar(&flagLogFile, "log-file", "", "write debug logs to this file")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}

	logger, cleanup, err := newLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	projectID, err := resolveProject(cfg, flagProject)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.Timeout()}
	client := api.NewClient(cfg.API.BaseURL, httpClient, logger)

	model := app.New(cfg, client, projectID, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newLogger writes structured logs to the given file, or discards them when
// no file is set. Logging to stderr would corrupt the TUI.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

// resolveProject picks the project to open: explicit flag, then the registry
// default, then the configured default.
func resolveProject(cfg *config.Config, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	registry, err := config.LoadProjectsRegistry()
	if err == nil {
		if p := registry.GetDefault(); p != nil {
			return p.ID, nil
		}
	}

	if cfg.Board.DefaultProject != "" {
		return cfg.Board.DefaultProject, nil
	}
	return "", fmt.Errorf("no project configured: pass --project or add one to the registry")
}
