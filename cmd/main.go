package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/greenharvest/marketplace/internal/cache"
	"github.com/greenharvest/marketplace/internal/db"
	"github.com/greenharvest/marketplace/internal/draftstore"
	"github.com/greenharvest/marketplace/internal/kafka"
	"github.com/greenharvest/marketplace/internal/logger"
	"github.com/greenharvest/marketplace/internal/repository/postgresql"
	"github.com/greenharvest/marketplace/internal/server"
	"github.com/greenharvest/marketplace/internal/storage"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("database init error", zap.Error(err))
	}

	drafts, err := draftstore.New(envOr("DRAFT_DIR", "drafts"))
	if err != nil {
		log.Fatal("draft store init error", zap.Error(err))
	}

	requestRepo := postgresql.NewRequestRepo(database)
	orderRepo := postgresql.NewOrderRepo(database)
	farmerOrderRepo := postgresql.NewFarmerOrderRepo(database)
	availabilityRepo := postgresql.NewAvailabilityRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()
	userRepo := postgresql.NewUserRepo(database)

	availabilityCache := cache.NewAvailabilityCache(availabilityRepo)
	if err := availabilityCache.LoadInitialData(ctx); err != nil {
		log.Warn("failed to warm availability cache", zap.Error(err))
	}

	stg := storage.NewStorage(
		database,
		requestRepo,
		orderRepo,
		farmerOrderRepo,
		availabilityRepo,
		historyRepo,
		outboxRepo,
		drafts,
	).WithAvailabilityCache(availabilityCache)

	var producer kafka.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafka.NewWriterProducer(strings.Split(brokers, ","))
	} else {
		producer = kafka.NewConsoleProducer(log)
	}

	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
	}, log)
	go publisher.Run(ctx)

	srv := server.New(stg, userRepo, log)

	go func() {
		if err := srv.Run(ctx, envOr("HTTP_PORT", "9000")); err != nil {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	publisher.Shutdown()

	log.Info("server gracefully stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
