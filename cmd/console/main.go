package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/pompeii/internal/config"
	"github.com/jwebster45206/pompeii/internal/logger"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to LOG_FILE or nowhere.
	var log *slog.Logger
	if cfg.LogFile != "" {
		var closeLog func() error
		log, closeLog, err = logger.Setup(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = closeLog()
		}()
	} else {
		log = logger.New(io.Discard, cfg)
	}

	consoleCfg := &ConsoleConfig{
		APIBaseURL: os.Getenv("API_BASE_URL"),
		Timeout:    30 * time.Second,
	}

	var backend Backend
	if consoleCfg.APIBaseURL == "" {
		backend = newLocalBackend(log)
	} else {
		client := &http.Client{
			Timeout: consoleCfg.Timeout,
		}
		if !testConnection(client, consoleCfg.APIBaseURL) {
			fmt.Fprintf(os.Stderr, "Could not connect to API at %s. Please ensure the API is running.\nTry: STORAGE=memory go run ./cmd/api\n", consoleCfg.APIBaseURL)
			os.Exit(1)
		}
		backend = newAPIBackend(client, consoleCfg.APIBaseURL, log)
	}

	p := tea.NewProgram(NewConsoleUI(backend, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
