package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/dastanaron/browser-bookmarks/internal/commands"
	"github.com/dastanaron/browser-bookmarks/internal/config"
	"github.com/dastanaron/browser-bookmarks/internal/service"
	"github.com/dastanaron/browser-bookmarks/internal/source"
	"github.com/dastanaron/browser-bookmarks/internal/ui"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.bookmarks/config.yml)")
	list := flag.Bool("list", false, "Print the bookmark tree of every browser")
	search := flag.String("search", "", "Print bookmarks matching the query")
	exportPath := flag.String("export", "", "Path to write all bookmarks to")
	format := flag.String("format", commands.FormatHTML, "Export format (html, yaml)")
	openURL := flag.String("open", "", "URL to open in a browser")
	browser := flag.String("browser", "", "Browser to open the URL in")
	private := flag.Bool("private", false, "Open the URL in a private window")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *logLevel != "" {
		cfg.WithLogLevel(*logLevel)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	// The TUI is created up front so reloads can redraw it once it runs.
	app := ui.NewApp()
	registry := source.NewRegistry(cfg, source.WithLogger(logger), source.WithOnReload(app.OnReload))
	defer registry.Close()

	var trees []service.Tree
	for _, src := range registry.Sources() {
		trees = append(trees, src)
	}
	bookmarkSvc := service.NewBookmarkService(trees...)

	// Handle list command
	if *list {
		if err := commands.NewListCommand(bookmarkSvc).Execute(os.Stdout); err != nil {
			log.Fatalf("List failed: %v", err)
		}
		return
	}

	// Handle search command
	if *search != "" {
		if err := commands.NewSearchCommand(bookmarkSvc).Execute(os.Stdout, *search); err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		return
	}

	// Handle export command
	if *exportPath != "" {
		if err := commands.NewExportCommand(bookmarkSvc).Execute(*exportPath, *format); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		return
	}

	// Handle open command
	if *openURL != "" {
		if err := commands.NewOpenCommand(registry, bookmarkSvc).Execute(*browser, *openURL, *private); err != nil {
			log.Fatalf("Open failed: %v", err)
		}
		return
	}

	if err := app.Run(registry, bookmarkSvc); err != nil {
		log.Fatal(err)
	}
}
