package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mediculture/mediculture-backend/config"
	appointmentsrepo "github.com/mediculture/mediculture-backend/internal/appointments/repository"
	"github.com/mediculture/mediculture-backend/internal/auth"
	"github.com/mediculture/mediculture-backend/internal/bootstrap"
	"github.com/mediculture/mediculture-backend/internal/cache"
	communityrepo "github.com/mediculture/mediculture-backend/internal/community/repository"
	"github.com/mediculture/mediculture-backend/internal/logging"
	medicinesrepo "github.com/mediculture/mediculture-backend/internal/medicines/repository"
	"github.com/mediculture/mediculture-backend/internal/seed"
	usersrepo "github.com/mediculture/mediculture-backend/internal/users/repository"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "mediculture",
		Short:        "MEDICULTURE health services API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users, medicines, appointments and posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), drop)
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "delete existing documents before seeding")
	return cmd
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	store, err := bootstrap.OpenDB(ctx, cfg.Mongo)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to MongoDB")
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	redisCache := bootstrap.OpenCache(ctx, cfg.Redis, logger)

	verifier, err := auth.NewVerifier(ctx, &cfg.Firebase)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize Firebase")
		return err
	}
	if cfg.Firebase.AuthDisabled {
		logger.Warn().Msg("AUTH_DISABLED is set, bearer tokens are taken as user ids")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:   cfg,
		Logger:   logger,
		DB:       store,
		Cache:    redisCache,
		Verifier: verifier,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("version", cfg.App.Version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error().Err(err).Msg("server failed")
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

func runSeed(ctx context.Context, drop bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)

	store, err := bootstrap.OpenDB(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	var categories cache.Strings = cache.Noop{}
	if rc := bootstrap.OpenCache(ctx, cfg.Redis, logger); rc != nil {
		categories = rc
	}

	seeder := &seed.Seeder{
		Users:        usersrepo.NewUserRepository(store.Database),
		Medicines:    medicinesrepo.NewMedicineRepository(store.Database),
		Appointments: appointmentsrepo.NewAppointmentRepository(store.Database),
		Posts:        communityrepo.NewPostRepository(store.Database),
		Cache:        categories,
		Logger:       logger,
	}
	_, err = seeder.Run(ctx, drop)
	return err
}
