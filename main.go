package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"planetcloud/catalog"
	"planetcloud/config"
	"planetcloud/contour"
	"planetcloud/logging"
	"planetcloud/noise"
	"planetcloud/observability"
	"planetcloud/server"
	"planetcloud/viewer"
)

func main() {
	var (
		mode       = flag.String("mode", "serve", "Run mode (serve, view)")
		configPath = flag.String("config", config.DefaultPath, "Settings file")
		bodyName   = flag.String("body", "", "Body to simulate (overrides settings)")
		seed       = flag.Int64("seed", 0, "Generation seed (overrides settings when non-zero)")
		addr       = flag.String("addr", "", "Listen address (overrides settings)")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	if *bodyName != "" {
		settings.Simulation.Body = *bodyName
	}
	if *seed != 0 {
		settings.Simulation.Seed = *seed
	}
	if *addr != "" {
		settings.Server.Addr = *addr
	}

	log := logging.New(settings.Logging)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *mode, settings, log); err != nil {
		log.Error(ctx, "exit", logging.Err(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, mode string, settings *config.Settings, log logging.Logger) error {
	if !catalog.Has(settings.Simulation.Body) {
		return fmt.Errorf("unknown body %q, want one of %v", settings.Simulation.Body, catalog.Names())
	}

	shutdown, err := observability.InitTracing(ctx, settings.Tracing, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	log.Info(ctx, "starting",
		logging.String("mode", mode),
		logging.String("body", settings.Simulation.Body),
		logging.Int64("seed", settings.Simulation.Seed),
	)

	switch mode {
	case "serve":
		metrics, err := observability.NewCollector(nil)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		return server.New(settings, log, metrics).Run(ctx)

	case "view":
		sys, err := catalog.Build(ctx, settings.Simulation.Body, settings.Simulation.Seed)
		if err != nil {
			return err
		}
		background := contour.NewBackground(noise.NewPerlin("contour-background", 3), settings.ContourOptions())
		return viewer.New(settings.Viewer, sys, background, settings.Simulation.TimeScale, log).Run(ctx)

	default:
		return fmt.Errorf("unknown mode %q, want serve or view", mode)
	}
}
