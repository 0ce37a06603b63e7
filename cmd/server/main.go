package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"imovelhub/server/config"
	"imovelhub/server/internal/addresslookup"
	"imovelhub/server/internal/api"
	"imovelhub/server/internal/database"
	"imovelhub/server/internal/events"
	"imovelhub/server/internal/listing"
	"imovelhub/server/internal/portals"
	"imovelhub/server/internal/processor"
	"imovelhub/server/internal/queue"
	"imovelhub/server/internal/scheduler"
	"imovelhub/server/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level %q, using info", cfg.Server.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if err := config.LoadPortalCatalog(cfg.Portals.CatalogPath); err != nil {
		logger.WithError(err).Fatal("Failed to load portal catalog")
	}
	logger.Infof("Loaded %d listing portals", len(config.GetPortals()))

	// Initialize database
	logger.Infof("Using %s database", cfg.Database.Driver)
	db, err := database.Open(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	listings := listing.NewCachedRepository(db, cfg.Cache.TTL, logger)

	cacheDir := cfg.AddressLookup.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "imovelhub", "cep_cache")
	}
	addresses := addresslookup.NewLookup(logger, cfg.AddressLookup.BaseURL, cacheDir, cfg.AddressLookup.Timeout)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.WithError(err).Error("Failed to connect to the event broker, events are disabled")
		} else {
			publisher = amqpPublisher
		}
	}

	validator, err := portals.NewValidator()
	if err != nil {
		logger.WithError(err).Fatal("Failed to compile portal config schema")
	}

	// Bulk unit imports
	unitQueue := queue.NewUnitQueue(cfg.BatchProcessing.QueueSize, cfg.BatchProcessing.ProcessorCount, logger)
	batchProcessor := processor.NewBatchProcessor(db.GetDB(), unitQueue, cfg, logger)
	batchProcessor.OnProcessed(func(batch queue.UnitBatch) {
		listings.InvalidateUnits(batch.DevelopmentID)
	})
	batchProcessor.Start()

	reconciler := scheduler.NewScheduler(db, listings, cfg.Reconciler.Interval, logger)
	reconciler.Start()

	handler := api.NewHandler(api.Options{
		DB:               db,
		Listings:         listings,
		Addresses:        addresses,
		Notifier:         telegram.NewService(logger),
		Publisher:        publisher,
		Queue:            unitQueue,
		Validator:        validator,
		GeohashPrecision: cfg.Map.GeohashPrecision,
		Logger:           logger,
	})

	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		api.RequestID(),
		api.RequestLogger(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:  cfg.Server.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders: []string{"X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}),
	)
	api.SetupRoutes(router, handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	// Drain pending imports before closing the database
	reconciler.Stop()
	if err := unitQueue.Close(); err != nil {
		logger.WithError(err).Error("Failed to close unit queue")
	}
	batchProcessor.Stop()

	if err := publisher.Close(); err != nil {
		logger.WithError(err).Error("Failed to close event publisher")
	}
	if err := db.Close(); err != nil {
		logger.WithError(err).Error("Failed to close database")
	}
	logger.Info("Server exited")
}
