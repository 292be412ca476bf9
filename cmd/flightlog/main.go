package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"flightlog/pkg/config"
	"flightlog/pkg/geo"
	"flightlog/pkg/logbook"
	"flightlog/pkg/logging"
	"flightlog/pkg/navdata"
	"flightlog/pkg/probe"
	"flightlog/pkg/sim"
	"flightlog/pkg/sim/mocksim"
	"flightlog/pkg/sim/msfs"
	"flightlog/pkg/sim/xplane"
	"flightlog/pkg/tracking"
	"flightlog/pkg/version"
)

var (
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
	configPath = flag.String("config", "configs/flightlog.yaml", "Path to the config file")
	simFlag    = flag.String("sim", "", "Simulator provider override (msfs, xp12, mock)")
)

func main() {
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", *configPath)
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *simFlag != "" {
		cfg.Sim.Provider = *simFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Flightlog Started", "version", version.Version, "sim", cfg.Sim.Provider)

	nav, err := navdata.Init(cfg.NavdataPath())
	if err != nil {
		return fmt.Errorf("failed to open navdata: %w", err)
	}
	defer nav.Close()

	if err := nav.Bootstrap(); err != nil {
		return fmt.Errorf("failed to index navdata: %w", err)
	}

	book, err := logbook.Open(cfg.Logbook.Path)
	if err != nil {
		return fmt.Errorf("failed to open logbook: %w", err)
	}
	defer book.Close()

	// Startup Probes
	probes := []probe.Probe{
		{
			Name:     "Navdata",
			Check:    func(context.Context) error { return nav.Check() },
			Critical: true,
		},
		{
			Name: "Logbook",
			Check: func(context.Context) error {
				_, err := os.Stat(cfg.Logbook.Path)
				return err
			},
			Critical: true,
		},
	}
	if err := probe.AnalyzeResults(probe.Run(ctx, probes)); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	conn, err := initSimClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize sim client: %w", err)
	}
	defer conn.Close()

	engine := tracking.NewEngine(conn, nav, book)
	return engine.Run(ctx)
}

func initSimClient(cfg *config.Config) (sim.Connection, error) {
	switch cfg.Sim.Provider {
	case config.ProviderMSFS:
		return msfs.Dial(cfg.Sim.MSFS.PollInterval.Std())
	case config.ProviderXP12:
		return xplane.Dial(cfg.Sim.XPlane.Address, cfg.Sim.XPlane.ReadTimeout.Std())
	case config.ProviderMock:
		from := geo.New(cfg.Sim.Mock.FromLat, cfg.Sim.Mock.FromLon)
		to := geo.New(cfg.Sim.Mock.ToLat, cfg.Sim.Mock.ToLon)
		return mocksim.NewFlight(from, to), nil
	}
	return nil, fmt.Errorf("unknown sim provider: %s", cfg.Sim.Provider)
}
