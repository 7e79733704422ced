package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asha-backend/internal/config"
	"asha-backend/internal/handlers"
	"asha-backend/internal/middleware"
	"asha-backend/internal/routes"
	"asha-backend/internal/services"
	"asha-backend/internal/store/gormstore"
	"asha-backend/internal/store/mongostore"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asha-api",
		Short: "ASHA community health API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the relational schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}
			logger := config.NewLogger(cfg)

			db, err := config.OpenDB(cfg)
			if err != nil {
				return err
			}
			if err := gormstore.New(db).Migrate(cmd.Context()); err != nil {
				return err
			}
			logger.Info().Str("driver", cfg.DBDriver).Msg("migration complete")
			return nil
		},
	}
}

func runServer() error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := config.NewLogger(cfg)

	// 2. Connect databases
	db, err := config.OpenDB(cfg)
	if err != nil {
		return err
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("database connected")

	ctx := context.Background()
	mongoClient, err := config.OpenMongo(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	docs := mongostore.New(mongoClient.Database(cfg.MongoDB))
	if err := docs.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure mongo indexes: %w", err)
	}
	st := gormstore.New(db)

	// 3. External integrations
	pusher, err := utils.NewFCMPusher(ctx, utils.FCMCredentials{
		File: cfg.FCMCredentialsFile,
		JSON: cfg.FCMCredentialsJSON,
	}, logger)
	if err != nil {
		return err
	}
	uploader, err := utils.NewPictureUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		return err
	}
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// 4. Services
	family := services.NewFamilyService(st)
	h := &handlers.Handler{
		Auth:          services.NewAuthService(st, tokens, family),
		Identity:      services.NewIdentityService(st),
		Profiles:      services.NewProfileService(st, family, uploader),
		Fanout:        services.NewFanoutService(st, pusher, cfg.FCMSendRPS, cfg.FCMSendBurst, logger),
		Notifications: services.NewNotificationService(st),
		Queue:         services.NewQueueService(st, docs, logger),
		Appointments:  services.NewAppointmentService(st),
		Records:       services.NewRecordService(st, docs),
		Surveys:       services.NewSurveyService(st),
		Inventory:     services.NewInventoryService(docs),
		Logger:        logger,
	}

	// 5. Router
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	routes.SetupRoutes(r, h, tokens)

	// 6. Run with graceful shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
