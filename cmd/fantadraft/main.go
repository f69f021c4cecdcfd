package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jensholdgaard/fantadraft/internal/auction"
	"github.com/jensholdgaard/fantadraft/internal/bot"
	"github.com/jensholdgaard/fantadraft/internal/clock"
	"github.com/jensholdgaard/fantadraft/internal/config"
	"github.com/jensholdgaard/fantadraft/internal/gateway"
	"github.com/jensholdgaard/fantadraft/internal/health"
	"github.com/jensholdgaard/fantadraft/internal/leader"
	"github.com/jensholdgaard/fantadraft/internal/store"
	"github.com/jensholdgaard/fantadraft/internal/telemetry"

	// Register store drivers so they are available via store.Open.
	_ "github.com/jensholdgaard/fantadraft/internal/store/dbsql"
	_ "github.com/jensholdgaard/fantadraft/internal/store/postgres"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		slog.Error("fatal error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup telemetry.
	tp, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		slog.Warn("telemetry setup failed, continuing without OTEL export", slog.Any("error", err))
		tp = telemetry.NewNopProvider()
	}
	defer func() {
		if shutdownErr := tp.Shutdown(context.Background()); shutdownErr != nil {
			slog.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	logger := tp.Logger
	clk := clock.Real{}

	repos, err := store.Open(ctx, cfg.Database, clk)
	if err != nil {
		return fmt.Errorf("opening store (driver=%s): %w", cfg.Database.Driver, err)
	}
	defer repos.Closer.Close()

	logger.InfoContext(ctx, "connected to database", slog.String("driver", cfg.Database.Driver))

	manager := auction.NewManager(repos.Events, repos.Players, repos.Auctions, logger, tp.TracerProvider, clk)
	gw := gateway.NewServer(manager, logger, tp.TracerProvider)

	// Setup health checks.
	healthHandler := health.NewHandler(clk,
		health.Checker{
			Name:  "database",
			Check: repos.Ping,
		},
	)

	// One mux serves health probes on all replicas and the auction API on
	// the leader. Non-leaders answer the API too but hold no auctions.
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler.LivenessHandler())
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler())
	mux.Handle("/", gw.Handler())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "starting http server", slog.Int("port", cfg.Server.Port))
		if listenErr := httpServer.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
			logger.ErrorContext(ctx, "http server error", slog.Any("error", listenErr))
		}
	}()

	// serve is the core work that only the leader should run.
	serve := func(ctx context.Context) {
		a, createErr := manager.CreateAuction(ctx, cfg.Auction)
		if createErr != nil {
			logger.ErrorContext(ctx, "creating auction failed", slog.Any("error", createErr))
			return
		}

		if cfg.Discord.Enabled {
			announcer, botErr := bot.New(cfg.Discord, logger)
			if botErr != nil {
				logger.ErrorContext(ctx, "creating announcer failed", slog.Any("error", botErr))
			} else if botErr = announcer.Start(ctx); botErr != nil {
				logger.ErrorContext(ctx, "starting announcer failed", slog.Any("error", botErr))
			} else {
				announcer.Announce(a.Bus())
				defer func() {
					if stopErr := announcer.Stop(); stopErr != nil {
						logger.Error("announcer shutdown error", slog.Any("error", stopErr))
					}
				}()
			}
		}

		healthHandler.SetReady(true)
		logger.InfoContext(ctx, "fantadraft is running",
			slog.String("version", version),
			slog.String("auction_id", a.ID),
		)

		// Block until leadership is lost or the process is shutting down.
		<-ctx.Done()

		healthHandler.SetReady(false)
		a.Stop()
	}

	if cfg.LeaderElection.Enabled {
		logger.InfoContext(ctx, "leader election enabled, waiting for leadership...")

		leaderCfg := leader.Config{
			Enabled:        true,
			LeaseName:      cfg.LeaderElection.LeaseName,
			LeaseNamespace: cfg.LeaderElection.LeaseNamespace,
			LeaseDuration:  cfg.LeaderElection.LeaseDuration,
			RenewDeadline:  cfg.LeaderElection.RenewDeadline,
			RetryPeriod:    cfg.LeaderElection.RetryPeriod,
		}
		if leaderErr := leader.Run(ctx, leaderCfg, logger, serve, func() {
			logger.Info("lost leadership, shutting down...")
			cancel()
		}); leaderErr != nil {
			return fmt.Errorf("leader election: %w", leaderErr)
		}
	} else {
		serve(ctx)
		logger.Info("shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}
