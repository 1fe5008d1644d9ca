package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"repodash/internal/app"
	"repodash/internal/config"
	"repodash/internal/forge"
	"repodash/internal/gitscan"
	"repodash/internal/server"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to config file")
	scanPath := flag.String("path", "", "override scan path")
	serve := flag.Bool("serve", false, "serve the dashboard over SSH instead of running locally")
	port := flag.Int("port", 0, "override SSH listen port")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *scanPath != "" {
		cfg.ScanPath = *scanPath
	}
	if *port > 0 {
		cfg.SSH.Port = *port
	}

	logger, closeLog, err := newLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	scanner := gitscan.NewScanner(
		gitscan.NewCache(time.Duration(cfg.CacheTTL.Repos)*time.Minute),
		logger,
		cfg.SkipDirs,
	)
	client := forge.NewClient(
		cfg.GitHubToken,
		forge.NewCache(time.Duration(cfg.CacheTTL.GitHub)*time.Minute),
		logger,
	)

	if *serve {
		runServer(&cfg, logger, scanner, client)
		return
	}

	p := tea.NewProgram(
		app.New(&cfg, logger, scanner, client),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running dashboard: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the application logger. The TUI owns the terminal, so
// without a configured log file everything is discarded.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

func runServer(cfg *config.Config, logger *log.Logger, scanner *gitscan.Scanner, client *forge.Client) {
	srv, err := server.New(cfg, logger, scanner, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating server: %v\n", err)
		os.Exit(1)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("listening", "port", cfg.SSH.Port)
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	sig := <-done
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
}
