package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/careerforge/portfolio-api/internal/config"
	"github.com/careerforge/portfolio-api/internal/domain/analytics"
)

const (
	TopicAnalyticsEvents = "portfolio.analytics"
)

type KafkaProducerClient struct {
	AnalyticsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	analyticsWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicAnalyticsEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		AnalyticsWriter: analyticsWriter,
	}, nil
}

func (c *KafkaProducerClient) Close() {
	if c.AnalyticsWriter != nil {
		c.AnalyticsWriter.Close()
	}
}

// kafkaAnalyticsPublisher implements analytics.Publisher. Messages are keyed
// by portfolio id so events for one portfolio stay ordered within a
// partition.
type kafkaAnalyticsPublisher struct {
	writer *kafka.Writer
}

func NewKafkaAnalyticsPublisher(client *KafkaProducerClient) analytics.Publisher {
	return &kafkaAnalyticsPublisher{writer: client.AnalyticsWriter}
}

func (p *kafkaAnalyticsPublisher) Publish(ctx context.Context, e *analytics.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cannot marshal analytics event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.PortfolioID.String()),
		Value: payload,
	})
}
