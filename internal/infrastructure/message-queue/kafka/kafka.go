package kafka

import (
	"time"

	"github.com/AatishKamble/swapify/config"
	"github.com/segmentio/kafka-go"
)

// CreateKafkaReader joins the configured consumer group. Partition is left
// unset since the group assigns partitions.
func CreateKafkaReader(config *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:          []string{config.KafkaConfig.BrokerAddress},
		Topic:            config.KafkaConfig.BrokerTopic,
		GroupID:          config.KafkaConfig.ConsumerGroupID,
		MinBytes:         1e3, // 1KB
		MaxBytes:         1e6, // 1MB
		MaxWait:          100 * time.Millisecond,
		ReadLagInterval:  -1,
		StartOffset:      kafka.FirstOffset,
		QueueCapacity:    1000,
		ReadBatchTimeout: 10 * time.Millisecond,
	})
}

// CreateKafkaWriter returns a writer that dials brokers on demand and
// reconnects after failures. Messages with the same key share a partition.
// Retries are left to the caller, which runs them behind a circuit breaker.
func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:        config.KafkaConfig.BrokerTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  1,
		BatchSize:    1,
		WriteTimeout: config.KafkaConfig.WriteTimeout,
		ReadTimeout:  config.KafkaConfig.WriteTimeout,
	}
}
