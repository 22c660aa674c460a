package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/byteme/internal/command"
	"github.com/tgienger/byteme/internal/config"
	"github.com/tgienger/byteme/internal/db"
	"github.com/tgienger/byteme/internal/logging"
	"github.com/tgienger/byteme/internal/ui"
	"github.com/tgienger/byteme/internal/ui/render"
	"github.com/tgienger/byteme/internal/ui/styles"
	"go.uber.org/zap"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 2
	}

	// Handle version flag
	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "byteme %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	// Initialize database
	database, err := db.New(cfg.DataDir)
	if err != nil {
		logger.Error("opening database", zap.String("data_dir", cfg.DataDir), zap.Error(err))
		fmt.Fprintf(stderr, "Error initializing database: %v\n", err)
		return 1
	}
	defer database.Close()

	executor := command.NewExecutor(database, logger, cfg.EventDuration)

	// Anything left after the flags is a single command to run
	if len(cfg.Args) > 0 {
		return runOnce(executor, strings.Join(cfg.Args, " "), stdout, stderr)
	}

	logger.Info("starting console", zap.String("version", version))
	app := ui.NewApp(executor)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("console stopped", zap.Error(err))
		fmt.Fprintf(stderr, "Error running application: %v\n", err)
		return 1
	}
	return 0
}

func runOnce(executor *command.Executor, line string, stdout, stderr io.Writer) int {
	r := render.New(styles.NewStyles())

	resp, err := executor.Run(context.Background(), line)
	if err != nil {
		fmt.Fprintln(stderr, r.Error(err))
		return 1
	}
	fmt.Fprintln(stdout, r.Response(resp))
	return 0
}
