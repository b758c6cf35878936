/**
 * @description
 * This is the main entry point for the onboarding-service. Its responsibility
 * is to initialize all necessary components: the database pool, the event
 * producer and consumer, the sync service, and the HTTP API.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Establishes and manages a connection pool to the PostgreSQL database.
 * - Wires up the sync service with its dependencies (store, publisher).
 * - Starts the KYC decision consumer and implements graceful shutdown.
 *
 * @dependencies
 * - The service's internal packages for config, app logic, storage, and the API.
 * - pgxpool for database connection, godotenv for local config, and rabbitmq for messaging.
 */
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/vayva/onboarding-service/internal/api"
	"github.com/vayva/onboarding-service/internal/app"
	"github.com/vayva/onboarding-service/internal/config"
	"github.com/vayva/onboarding-service/internal/store"
	"github.com/vayva/onboarding-service/pkg/billingclient"
	"github.com/vayva/onboarding-service/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load application configuration.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Establish database connection pool.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database URL: %v\n", err)
	}

	// Wizard syncs are bursty around launch campaigns, so size the pool
	// generously.
	dbConfig.MaxConns = 100
	dbConfig.MinConns = 20
	dbConfig.MaxConnLifetime = 30 * time.Minute
	dbConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts
	dbConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer dbpool.Close()
	log.Println("Database connection established")

	if err := store.EnsureSchema(context.Background(), dbpool); err != nil {
		log.Fatalf("Unable to ensure database schema: %v", err)
	}

	// Set up dependencies.
	onboardingStore := store.NewPostgresOnboardingStore(dbpool)
	bankRepo := store.NewPostgresBankRepository(dbpool)
	billingClient := billingclient.NewClient(cfg.BillingServiceURL)

	// The publisher is best-effort: if RabbitMQ is unreachable at startup we
	// fall back to a no-op publisher rather than refusing to serve syncs.
	var publisher rabbitmq.Publisher
	producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("WARN: could not connect to RabbitMQ, events will not be published: %v", err)
		publisher = &rabbitmq.NoopPublisher{}
	} else {
		publisher = producer
	}
	defer publisher.Close()

	// Setup services
	syncService := app.NewOnboardingService(onboardingStore, publisher)
	kycHandler := app.NewKycEventHandler(onboardingStore)

	// Setup RabbitMQ consumer for KYC decisions.
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("WARN: could not start KYC consumer: %v", err)
	} else {
		defer consumer.Close()
		go func() {
			log.Printf("Starting consumer for event 'kyc.decision.updated'...")
			err := consumer.Consume("kyc_events", "onboarding_service_kyc_decision", "kyc.decision.updated", kycHandler.HandleKycDecisionEvent)
			if err != nil {
				log.Printf("Consumer error: %v", err) // Log as non-fatal
			}
		}()
	}

	// Setup and start HTTP server.
	onboardingHandler := api.NewOnboardingHandler(syncService)
	templateHandler := api.NewTemplateHandler(billingClient)
	bankHandler := api.NewBankHandler(bankRepo)

	router := api.NewRouter(onboardingHandler, templateHandler, bankHandler, cfg.JWTSecret)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	log.Println("Onboarding service is running with API and event consumer.")

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down onboarding-service...")

	// Create a context with a timeout for shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the HTTP server.
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
