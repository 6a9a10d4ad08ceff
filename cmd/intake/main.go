package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/intake/internal/config"
	"github.com/csheth/intake/internal/gateway"
	"github.com/csheth/intake/internal/receipts"
	"github.com/csheth/intake/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	backend := flag.String("backend", "", "backend base URL (default "+config.DefaultBackendURL+")")
	timeout := flag.Duration("timeout", 0, "request timeout, 0 leaves it to the transport")
	receiptsPath := flag.String("receipts", "", "append submission receipts to this JSONL file")
	logPath := flag.String("log", "", "write debug logs to this file")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	cfg, err := config.Load(config.Options{File: *configPath, DotEnv: ".env"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.BackendURL = *backend
		case "timeout":
			cfg.RequestTimeout = *timeout
		case "receipts":
			cfg.ReceiptsPath = *receiptsPath
		case "log":
			cfg.LogPath = *logPath
		case "no-alt-screen":
			cfg.AltScreen = !*noAltScreen
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "intake")
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("starting: backend=%s timeout=%s receipts=%q", cfg.BackendURL, cfg.RequestTimeout, cfg.ReceiptsPath)

	journal := receipts.Open(cfg.ReceiptsPath)
	prior := 0
	if journal.Enabled() {
		existing, err := receipts.Load(journal.Path())
		if err != nil {
			log.Printf("[receipts] could not read %s: %v", journal.Path(), err)
		}
		prior = len(existing)
	}

	client := gateway.New(gateway.Config{BaseURL: cfg.BackendURL, Timeout: cfg.RequestTimeout})

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Submitter:       client,
			Receipts:        journal,
			PriorReceipts:   prior,
			BackendURL:      client.BaseURL(),
			NotificationTTL: cfg.NotificationTTL,
		}),
		opts...,
	)

	started := time.Now()
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "program error:", err)
		os.Exit(1)
	}
	log.Printf("exiting after %s", time.Since(started).Round(time.Second))
}
