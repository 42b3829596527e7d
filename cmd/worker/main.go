package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/careerforge/portfolio-api/adapters/event"
	"github.com/careerforge/portfolio-api/adapters/persistence"
	analyticsUC "github.com/careerforge/portfolio-api/internal/application/usecase/analytics"
	"github.com/careerforge/portfolio-api/internal/config"
	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

func main() {
	fmt.Println("Starting Portfolio Analytics Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	analyticsRepo := persistence.NewPostgresAnalyticsRepo(dbPool, appLogger)

	// Worker Use Case
	processEventUC := analyticsUC.NewProcessEventUseCase(analyticsRepo, appLogger)

	// Kafka Consumer
	analyticsConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicAnalyticsEvents,
		GroupID:  "analytics-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer analyticsConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicAnalyticsEvents)

	ctx := context.Background()
	for {
		msg, err := analyticsConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var e analytics.Event
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(analyticsConsumer, msg)
			continue
		}

		if err := processEventUC.Execute(ctx, &e); err != nil {
			log.Printf("ERROR: Failed to process event %s: %v", e.ID, err)
			// a malformed event never gets better; only storage failures
			// are worth retrying
			if errors.Is(err, apperror.ErrInvalidInput) {
				commitMessage(analyticsConsumer, msg)
			}
			continue
		}

		commitMessage(analyticsConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
