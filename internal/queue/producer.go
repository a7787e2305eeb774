// Package queue wraps the Kafka producer behind the narrow contract the
// batch publisher needs: hand over a payload, get back a message id.
package queue

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Publisher accepts a record payload and returns the broker-assigned
// message identifier once the message is durably queued.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) (string, error)
	Close()
}

// KafkaPublisher publishes through a confluent producer and waits for the
// per-message delivery report, so every accepted record has a concrete
// partition/offset to report back to the caller.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaPublisher connects a producer to the given broker and topic.
func NewKafkaPublisher(broker, topic string) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": broker,
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return &KafkaPublisher{producer: producer, topic: topic}, nil
}

// Publish sends one message and blocks until its delivery report arrives or
// the context expires. The returned id is topic[partition]@offset.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload []byte) (string, error) {
	deliveries := make(chan kafka.Event, 1)

	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          payload,
	}, deliveries)
	if err != nil {
		return "", fmt.Errorf("produce failed: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case event := <-deliveries:
		msg, ok := event.(*kafka.Message)
		if !ok {
			return "", fmt.Errorf("unexpected delivery event: %v", event)
		}
		if msg.TopicPartition.Error != nil {
			return "", fmt.Errorf("message delivery failed: %w", msg.TopicPartition.Error)
		}
		return fmt.Sprintf("%s[%d]@%d", *msg.TopicPartition.Topic, msg.TopicPartition.Partition, msg.TopicPartition.Offset), nil
	}
}

// Close flushes outstanding messages and releases the producer.
func (p *KafkaPublisher) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
