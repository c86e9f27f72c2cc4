package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher публикует события о записях в Kafka
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	log    Logger
}

// NewKafkaPublisher создает publisher. Вызывающий отвечает за Close.
func NewKafkaPublisher(brokers []string, topic string, log Logger) *KafkaPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	})

	return &KafkaPublisher{writer: writer, topic: topic, log: log}
}

// Publish отправляет событие и ждет подтверждения брокера
func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	msg, err := buildMessage(evt)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrPublish, evt.Type, evt.AggregateID, err)
	}

	p.log.Info("Published event %s type=%s aggregate=%s topic=%s", evt.ID, evt.Type, evt.AggregateID, p.topic)
	return nil
}

// Close сбрасывает буфер и закрывает соединения с брокерами
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func buildMessage(evt Event) (kafka.Message, error) {
	payload := evt.Payload
	payload.OccurredAt = evt.OccurredAt.UTC().Format(time.RFC3339)

	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return kafka.Message{
		Key:   []byte(evt.AggregateID),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(evt.ID)},
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}, nil
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Close ничего не делает
func (NoopPublisher) Close() error { return nil }
