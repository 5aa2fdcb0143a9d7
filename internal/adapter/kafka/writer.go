// Package kafka publishes answer events to a Kafka topic for downstream
// consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/urbansense/lst-insight/internal/assistant"
)

// Writer produces answer events to a Kafka topic.
// It implements assistant.EventPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the answer events topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishAnswer serializes and publishes a single answer event.
func (w *Writer) PublishAnswer(ctx context.Context, event assistant.AnswerEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish answer event: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AnswerEvent into a Kafka message keyed by
// query ID so answers for the same query land in the same partition.
func serializeToMessage(event assistant.AnswerEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize answer event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.QueryID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte(event.Source)},
			{Key: "answered_at", Value: []byte(event.AnsweredAt.Format(time.RFC3339))},
		},
	}, nil
}
