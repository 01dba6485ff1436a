package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vladima-ai/payment-service/internal/domain"
)

// DefaultKafkaPublisher emits paid-order events for downstream consumers (the
// group digest and any reporting tooling listening on the topic).
type DefaultKafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewDefaultKafkaPublisher(brokers []string, topic string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

func (k *DefaultKafkaPublisher) PublishPaid(event domain.PaidEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal paid event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.InvID, 10)),
		Value: v,
		Time:  time.Now(),
		Topic: k.topic,
	})
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}
