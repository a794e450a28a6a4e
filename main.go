// main.go
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"fitbook/cmd"
	"fitbook/internal/billing"
	"fitbook/internal/cache"
	"fitbook/internal/data/repository"
	"fitbook/internal/queue"
	"fitbook/internal/usecase"
	"fitbook/internal/wire"
	"fitbook/pkg/database"
	"fitbook/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Outbound adapters: billing API, credit cache, event publisher.
	// Each is nil-safe and disabled when unconfigured.
	billingClient := billing.NewClient(config.Billing, logger)
	creditCache := cache.NewCreditCache(config.Redis, logger)
	publisher := queue.NewPublisher(config.Queue.URL, config.Queue.BookingQueue, logger)

	// Wire all services
	service := usecase.NewService(repos, billingClient, creditCache, publisher, logger)

	// Payment confirmations arrive over AMQP and grant credits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := queue.NewPaymentConsumer(config.Queue.URL, config.Queue.PaymentQueue, service.Credit, logger)
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Payment consumer stopped", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(service, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, 15*time.Second)
}
