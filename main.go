// File: tidymove/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tidymove/config"
	"tidymove/database"
	bookingRepo "tidymove/database/repository/booking"
	professionalRepo "tidymove/database/repository/professional"
	"tidymove/handlers"
	"tidymove/middleware"
	"tidymove/models"
	"tidymove/routes"
	"tidymove/services/attribution"
	"tidymove/services/booking"
	"tidymove/services/document"
	"tidymove/services/notification"
	"tidymove/utils"
	"tidymove/workers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// logDispatcher hands assembled notifications to the log until a delivery
// transport (mail relay, push gateway) is configured for the deployment.
type logDispatcher struct {
	logger *zap.Logger
}

func (d *logDispatcher) Dispatch(ctx context.Context, customerID string, n models.Notification) error {
	d.logger.Info("notification dispatched",
		zap.String("customer_id", customerID),
		zap.String("type", n.Type),
		zap.String("message", n.Message))
	return nil
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	database.InitDB()
	utils.InitCache()
	utils.InitDocQueueCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bkRepo := bookingRepo.NewMongoBookingRepo()
	if err := bkRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	professionalDir := professionalRepo.NewMongoProfessionalDirectory()

	// document-retry queue client.
	docQueue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDocQueueDB,
	})
	defer docQueue.Close()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Dispatcher: &logDispatcher{logger: logger},
		Logger:     logger,
	}

	documentService := &document.DefaultDocumentOrchestrator{
		Repo:        bkRepo,
		Renderer:    document.NewTemplateRenderer(),
		Distributor: document.NewArchiveDistributor(utils.GetCacheClient(), logger),
		Notifier:    notificationService,
		Queue:       docQueue,
		MaxAttempts: config.AppConfig.DocRetryAttempts,
		Logger:      logger,
	}

	attributionService := &attribution.DefaultAttributionService{
		Repo:      bkRepo,
		Directory: professionalDir,
		Logger:    logger,
	}

	queryService := &booking.DefaultQueryService{Repo: bkRepo, Logger: logger}
	statsService := &booking.DefaultStatsService{Repo: bkRepo}
	updateService := &booking.DefaultUpdateService{Repo: bkRepo, Logger: logger}
	confirmationService := &booking.DefaultPaymentConfirmationService{
		Repo:        bkRepo,
		Documents:   documentService,
		Attribution: attributionService,
		Logger:      logger,
	}

	bookingHandler := handlers.NewBookingHandler(queryService, updateService, statsService, logger)
	webhookHandler := handlers.NewPaymentWebhookHandler(confirmationService, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, webhookHandler)

	// Start the out-of-band document retry worker.
	workers.InitDocumentRetryWorker(documentService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
