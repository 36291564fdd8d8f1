package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"rstr/internal/config"
	"rstr/internal/eventbus"
	"rstr/internal/scan"
	"rstr/internal/store"
	"rstr/internal/ui"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <path> <pattern>\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "Recursively searches files under <path> for lines matching the\nregular expression <pattern> and shows the results in a TUI.\n\nFlags:\n")
	flag.PrintDefaults()
}

// validateInputs resolves the search root and compiles the pattern.
// Both checks run before any file under the root is touched, so a bad
// argument aborts the run without traversing anything.
func validateInputs(dir, pattern string) (string, *regexp.Regexp, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return "", nil, fmt.Errorf("accessing %q: %w", dir, err)
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("%q is not a directory", dir)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	return absDir, re, nil
}

func main() {
	// Parse command line arguments
	var targetDir string
	var logPath string
	flag.StringVar(&targetDir, "d", "", "Directory to search (shorthand for the first positional argument)")
	flag.StringVar(&logPath, "log", "", "Append debug logging to this file")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	var pattern string
	switch {
	case targetDir != "" && len(args) == 1:
		pattern = args[0]
	case targetDir == "" && len(args) == 2:
		targetDir = args[0]
		pattern = args[1]
	default:
		usage()
		os.Exit(1)
	}

	// Validate the root path and pattern before any traversal
	absDir, re, err := validateInputs(targetDir, pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging; the terminal belongs to the TUI
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load presentation settings; absence of the file means defaults
	configSvc := config.NewConfigService()
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	// Create event bus and stores
	bus := eventbus.New()
	resultStore := store.NewMemoryResultStore()

	// Create UI model and program
	uiModel := ui.NewModel(cfg, resultStore, bus, pattern)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Append matches to the store before the UI hears about them, so the
	// model never observes a length it cannot index
	bus.Subscribe(eventbus.EventMatchFound, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.MatchFoundEvent); ok {
			resultStore.Add(event.Match)
		}
		p.Send(ui.EventMsg{Event: e})
	})
	for _, t := range []eventbus.EventType{
		eventbus.EventScanStarted,
		eventbus.EventScanProgress,
		eventbus.EventScanCompleted,
		eventbus.EventError,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	// Start the background scan
	scanSvc := scan.NewScanService(bus, re)
	if err := scanSvc.StartScan(ctx, absDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting scan: %v\n", err)
		os.Exit(1)
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	// Make sure the scan worker has stopped before exiting
	scanSvc.StopScan()
	cancel()
}
