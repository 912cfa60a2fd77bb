package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/hazard-decision-service/internal/config"
	"github.com/couchcryptid/hazard-decision-service/internal/domain"
)

// Writer produces assessment messages to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSinkTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one assessment and writes it to the sink topic, keyed by
// the global hazard kind so each kind stays on one partition.
func (w *Writer) Publish(ctx context.Context, a domain.Assessment) error {
	msg, err := serializeToMessage(a)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write assessment: %w", err)
	}
	w.logger.Debug("assessment published", "kind", a.Global.Kind, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Assessment into a Kafka message.
func serializeToMessage(a domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.Global.Kind),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(a.Global.Kind)},
			{Key: "severity", Value: []byte(a.Global.Severity)},
			{Key: "mocked", Value: []byte(strconv.FormatBool(a.Mocked))},
			{Key: "evaluated_at", Value: []byte(a.EvaluatedAt.Format(time.RFC3339))},
		},
	}, nil
}
