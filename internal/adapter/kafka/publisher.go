// Package kafka publishes region reports to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Header keys attached to every report message.
const (
	HeaderGrade       = "grade"
	HeaderRunID       = "run_id"
	HeaderGeneratedAt = "generated_at"
)

// messageWriter is the subset of *kafkago.Writer used by Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces one message per region report.
// It implements pipeline.ReportSink.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewPublisher creates a producer for topic on the given brokers.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, topic: topic, logger: logger}
}

// WriteReports publishes every report in a single WriteMessages call, in
// region code order.
func (p *Publisher) WriteReports(ctx context.Context, run domain.Run, reports domain.ReportSet) error {
	if len(reports) == 0 {
		return nil
	}
	codes := make([]string, 0, len(reports))
	for code := range reports {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	msgs := make([]kafkago.Message, 0, len(codes))
	for _, code := range codes {
		msg, err := serializeToMessage(run, code, reports[code])
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish reports: %w", err)
	}
	p.logger.Info("reports published", "topic", p.topic, "messages", len(msgs), "run_id", run.ID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a RegionReport into a Kafka message keyed by
// region code so every update of a region lands on the same partition.
func serializeToMessage(run domain.Run, code string, report domain.RegionReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report %s: %w", code, err)
	}
	return kafkago.Message{
		Key:   []byte(code),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderGrade, Value: []byte(report.Grade)},
			{Key: HeaderRunID, Value: []byte(run.ID)},
			{Key: HeaderGeneratedAt, Value: []byte(run.StartedAt.Format(time.RFC3339))},
		},
	}, nil
}
