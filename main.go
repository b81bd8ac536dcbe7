package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"voyago/config"
	"voyago/cron"
	"voyago/database"
	"voyago/database/repository"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/rental"
	"voyago/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	vehicleRepo := repository.NewMongoVehicleRepo()
	bookingRepo := repository.NewMongoBookingRepo()

	// Booking session infrastructure.
	sessionStore := rental.NewRedisSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLHours)*time.Hour,
	)
	backendClient := rental.NewHTTPBackendClient(
		config.AppConfig.BookingAPIURL,
		time.Duration(config.AppConfig.BookingAPITimeoutSec)*time.Second,
		logger,
	)

	// Pricing recalculation runs through the task queue.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer taskClient.Close()

	sessionService := rental.NewDefaultSessionService(sessionStore, backendClient, vehicleRepo, bookingRepo, taskClient, logger)
	cron.InitPricingWorker(sessionService)

	rentalHandler := handlers.NewRentalHandler(sessionService, logger)
	vehicleHandler := handlers.NewVehicleHandler(vehicleRepo, logger)

	routes.RegisterRoutes(router, rentalHandler, vehicleHandler)

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
