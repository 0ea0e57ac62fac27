package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/coaching-service/internal/audit"
	"github.com/SAP-F-2025/coaching-service/internal/auth"
	"github.com/SAP-F-2025/coaching-service/internal/config"
	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/navigation"
	"github.com/SAP-F-2025/coaching-service/internal/services"
	"github.com/SAP-F-2025/coaching-service/internal/session"
	"github.com/SAP-F-2025/coaching-service/internal/storage"
	"github.com/SAP-F-2025/coaching-service/internal/utils"
	"github.com/SAP-F-2025/coaching-service/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize durable storage (Redis if configured, in-memory otherwise)
	var store storage.Store = storage.NewMemoryStore()
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = storage.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis, falling back to memory: %v", err)
		} else {
			store = storage.NewRedisStore(redisClient, cfg.RedisPrefix)
		}
	}

	// Initialize the audit pipeline. The channel pub/sub carries events
	// in-process; with brokers configured the publisher side goes to Kafka
	// instead and the local recorder only sees in-process events.
	pubSub := audit.NewChannelPubSub(slogLogger)
	var publisher message.Publisher = pubSub
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		publisher = kafkaPub
	}
	sink := audit.NewPublisher(publisher, cfg.AuditTopic, slogLogger)
	recorder := audit.NewRecorder(store, slogLogger)

	// Initialize the credential verifier
	var authn auth.Authenticator
	if cfg.AuthProvider == "casdoor" {
		authn = auth.NewCasdoorAuthenticator(cfg.Casdoor)
	} else {
		authn = auth.NewStaticAuthenticator(dataset.DemoCredentials())
	}

	// Initialize the dataset and services
	repo := dataset.NewMemoryRepository(dataset.Demo())
	serviceManager := services.NewDefaultServiceManager(repo, sink, slogLogger)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize the navigation router with a cold-start session restore
	sessions := session.NewStore(store, slogLogger)
	limiter := auth.NewRateLimiter(5, 15*time.Minute)
	router := navigation.NewRouter(sessions, authn, validator.New(), sink, logger,
		cfg.SessionTTL, navigation.WithRateLimiter(limiter))

	state, err := router.Start(context.Background())
	if err != nil {
		log.Fatalf("Failed to restore session state: %v", err)
	}
	logger.Info("Router started", "screen", string(state.Screen), "environment", cfg.Environment)

	// Run the audit recorder until interrupted
	runCtx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- recorder.Run(runCtx, pubSub, cfg.AuditTopic)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	select {
	case err := <-done:
		if err != nil && err != context.Canceled {
			log.Printf("Audit recorder stopped with error: %v", err)
		}
	case <-ctx.Done():
		log.Printf("Audit recorder did not stop in time")
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}
	if err := pubSub.Close(); err != nil {
		log.Printf("Failed to close audit pub/sub: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Exited")
}
