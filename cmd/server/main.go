package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/api"
	"github.com/skillswap-api/internal/config"
	"github.com/skillswap-api/internal/notify"
	"github.com/skillswap-api/internal/repository"
	"github.com/skillswap-api/internal/seed"
	"github.com/skillswap-api/internal/service"
	"github.com/skillswap-api/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "skillswap",
	Short:         "SkillSwap marketplace API",
	Long:          `Serves the SkillSwap user directory, swap request ledger and moderation API. State lives in memory and resets on restart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap builds the repositories and loads the starting marketplace state
func bootstrap(log zerolog.Logger, cfg *config.Config) (*repository.Repositories, error) {
	repos := repository.New(repository.Options{HideBanned: cfg.Market.HideBannedUsers})

	switch {
	case cfg.Seed.File != "":
		fixture, err := seed.Load(cfg.Seed.File)
		if err != nil {
			return nil, err
		}
		fixture.Apply(repos)
		log.Info().Str("file", cfg.Seed.File).Int("users", repos.User.Count()).Msg("Seed fixture loaded")
	case cfg.Seed.SampleData:
		seed.Sample().Apply(repos)
		log.Info().Int("users", repos.User.Count()).Msg("Sample data loaded")
	default:
		log.Info().Msg("Starting with an empty marketplace")
	}

	return repos, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info().Msg("Starting SkillSwap API server...")

	// Initialize repositories
	repos, err := bootstrap(log, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load seed data")
		return err
	}

	// Notification feed and websocket hub
	feed := notify.NewFeed(cfg.Notify.HistorySize, log)
	hub := notify.NewHub(feed, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)

	// Initialize services
	services := service.NewServices(repos, feed, cfg, log)

	// Initialize router
	router := api.NewRouter(services, feed, hub, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server failed")
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
