package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/sdfwot/pkg/api"
	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/db"
	"github.com/urmzd/sdfwot/pkg/document"

	_ "github.com/urmzd/sdfwot/docs"
)

// @title           sdfwot API
// @version         1.0
// @description     REST API for converting between SDF models and WoT Thing Models and Thing Descriptions

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/sdfwot/sdfwot.db)")
	addrFlag := flag.String("addr", "", "Listen address (default: from the active profile)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("default_target", cfg.DefaultTarget()).
		Bool("record_history", cfg.RecordHistory()).
		Str("api_address", cfg.APIAddress()).
		Msg("Configuration loaded")

	metrics := api.NewMetrics()
	events := convert.NewBroadcaster()
	opts := []convert.Option{
		convert.WithSDFTarget(document.Kind(cfg.DefaultTarget())),
		convert.WithObserver(metrics.ObserveConversion),
		convert.WithEvents(events),
	}
	var history db.ConversionStore
	if cfg.RecordHistory() {
		history = database.Conversions()
		opts = append(opts, convert.WithHistory(history, &cfg.Profile.ID))
	}
	service := convert.NewService(document.NewLoader(), opts...)

	router := api.NewRouter(api.Deps{
		Service:  service,
		History:  history,
		Database: database,
		Metrics:  metrics,
		Events:   events,
	})

	addr := cfg.APIAddress()
	if *addrFlag != "" {
		addr = *addrFlag
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down server")
		}
	}()

	// Start server
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
