package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/config"
)

type kafkaProducer struct {
	producer *kafka.Producer
	topic    string
}

func newKafkaProducer(cfg config.PubsubCfg) (*kafka.Producer, error) {
	kafkaCfg := &kafka.ConfigMap{
		"bootstrap.servers":        cfg.KafkaAddress,
		"enable.idempotence":       true,       // Prevents duplicates
		"acks":                     "all",      // Wait for all replicas
		"retries":                  2147483647, // Max retries
		"reconnect.backoff.max.ms": 30000,

		// Maintain ordering during retries
		"max.in.flight.requests.per.connection": 1,

		// Optional throughput tuning
		"linger.ms":          5,
		"batch.num.messages": 10000,
	}

	return kafka.NewProducer(kafkaCfg)
}

func NewProducer(cfg config.Config) (TaskEventProducer, error) {
	if err := prepareTopic(context.Background(), cfg); err != nil {
		return nil, err
	}

	p, err := newKafkaProducer(cfg.PubsubCfg)
	if err != nil {
		return nil, err
	}

	producer := &kafkaProducer{producer: p, topic: cfg.TaskTopic}
	producer.startDrain()

	return producer, nil
}

func (p *kafkaProducer) Produce(ctx context.Context, event TaskEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	kafkaMsg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(event.TaskId),
		Value: payload,
	}

	return p.producer.Produce(kafkaMsg, nil)
}

func (p *kafkaProducer) Shutdown() {
	p.producer.Close()
}

func (p *kafkaProducer) startDrain() {
	go func() {
		defer slog.Info("Producer event loop was closed")

		for e := range p.producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					slog.Error("Delivery failed", "error", ev.TopicPartition.Error)
				}
			case kafka.Error:
				slog.Error("Producer error", "error", ev)
			}
		}
	}()
}

// Topic creation happens here only for the development environment.
// Production topics are provisioned before the application runs.
func prepareTopic(ctx context.Context, cfg config.Config) error {
	if cfg.Environment != "development" {
		return nil
	}

	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": cfg.KafkaAddress})
	if err != nil {
		return fmt.Errorf("error while creating admin: %v", err)
	}
	defer admin.Close()

	res, err := admin.CreateTopics(ctx, []kafka.TopicSpecification{{
		Topic:             cfg.TaskTopic,
		NumPartitions:     3,
		ReplicationFactor: 1, // 1 node for dev
	}})

	for _, r := range res {
		if r.Error.Code() != kafka.ErrNoError && r.Error.Code() != kafka.ErrTopicAlreadyExists {
			err = errors.Join(err, fmt.Errorf("result for topic %s: %v", r.Topic, r.Error))
		}
	}

	return err
}
