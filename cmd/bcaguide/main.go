// Package main runs the interactive composition editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bcaguide/internal/archive"
	"bcaguide/internal/config"
	"bcaguide/internal/core"
	"bcaguide/internal/deck"
	"bcaguide/internal/infra/persistence"
	"bcaguide/internal/tui"
	"bcaguide/pkg/catalog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("bcaguide", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "bcaguide: %v\n", err)
		return 1
	}

	if os.Getenv("BCAGUIDE_DEBUG") != "" {
		f, err := tea.LogToFile("bcaguide.log", "bcaguide")
		if err != nil {
			fmt.Fprintf(stderr, "bcaguide: debug log: %v\n", err)
			return 1
		}
		defer f.Close()
	}

	store, err := persistence.Open()
	if err != nil {
		fmt.Fprintf(stderr, "bcaguide: open configuration store: %v\n", err)
		return 1
	}
	defer store.Close()

	archiveStore, err := archive.Open(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "bcaguide: open deck archive: %v\n", err)
		return 1
	}
	writer := deck.NewWriter(archiveStore)

	registry := prometheus.NewRegistry()
	metrics := core.NewMetrics(registry)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				fmt.Fprintf(stderr, "bcaguide: metrics listener: %v\n", err)
			}
		}()
	}

	session := core.NewSession(core.SessionConfig{
		Simulation:      cfg.Simulation,
		MaxComponents:   cfg.MaxComponents,
		TargetThickness: cfg.Target.Thickness,
		TargetSegments:  cfg.Target.Segments,
		Metrics:         metrics,
	})

	model := tui.New(session, catalog.Default(), store, writer)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(stderr, "bcaguide: %v\n", err)
		return 1
	}
	return 0
}
