// cmd/accidentmon/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rusenback/accident-monitor/internal/backend"
	"github.com/rusenback/accident-monitor/internal/config"
	"github.com/rusenback/accident-monitor/internal/geomap"
	"github.com/rusenback/accident-monitor/internal/logging"
	"github.com/rusenback/accident-monitor/internal/storage"
	"github.com/rusenback/accident-monitor/internal/tui"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	var (
		configPath = flag.String("config", "", "Path to config file (default: XDG config directory)")
		backendURL = flag.String("backend", "", "Detection backend URL (overrides config)")
		verbose    = flag.Bool("verbose", false, "Debug logging")
		noHistory  = flag.Bool("no-history", false, "Do not keep a local stats history")
	)
	flag.Parse()

	if *configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			fmt.Printf("❌ Failed to resolve config path: %v\n", err)
			os.Exit(1)
		}
		*configPath = path
	}

	cfg, err := config.LoadOrCreateConfig(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.BackendURL = *backendURL
		if err := cfg.Validate(); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, *verbose, !*noHistory && cfg.History); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, verbose, history bool) error {
	logger, err := logging.New(cfg.LogPath(), verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout(),
	}, logger)
	if err != nil {
		return err
	}

	var store *storage.Storage
	if history {
		store, err = storage.NewStorage(cfg.HistoryPath(), logger)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()
	}

	logger.Info("starting dashboard",
		zap.String("backend", cfg.BackendURL),
		zap.Bool("history", history),
	)

	m := tui.NewModel(client, store, tuiConfig(cfg), logger)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func tuiConfig(cfg *config.Config) tui.Config {
	c := tui.DefaultConfig()
	c.StatusInterval = cfg.StatusInterval()
	c.RefreshInterval = cfg.RefreshInterval()
	c.AlertDuration = cfg.AlertDuration()
	c.DefaultSource = cfg.DefaultSource
	c.MapCenter = geomap.LatLng{Lat: cfg.MapLat, Lng: cfg.MapLng}
	c.MapZoom = cfg.MapZoom
	c.Tiles = geomap.TileLayer{Template: cfg.TileURL, Attribution: cfg.Attribution}
	return c
}
