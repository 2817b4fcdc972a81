package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/shooting-dashboard/internal/config"
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Record types carried in the record_type header.
const (
	RecordState   = "state"
	RecordMonth   = "month"
	RecordSummary = "summary"
)

const monthKeyLayout = "2006-01"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes dashboard snapshots to a Kafka topic.
// It implements pipeline.SnapshotPublisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSnapshotTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// summary is the payload of the single per-snapshot summary message.
type summary struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Stats       domain.LoadStats `json:"stats"`
	States      int              `json:"states"`
	Counties    int              `json:"counties"`
	TrendMean   float64          `json:"trend_mean"`
	Correlation struct {
		Valid     bool    `json:"valid"`
		Slope     float64 `json:"slope"`
		Intercept float64 `json:"intercept"`
		R         float64 `json:"r"`
	} `json:"correlation"`
}

// Publish writes one message per state aggregate, one per monthly trend
// bucket and a closing summary in a single WriteMessages call. It returns
// the number of messages written.
func (w *Writer) Publish(ctx context.Context, a domain.Analysis) (int, error) {
	msgs, err := snapshotMessages(a)
	if err != nil {
		return 0, err
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("publish snapshot: %w", err)
	}
	w.logger.Debug("snapshot published", "messages", len(msgs), "generated_at", a.GeneratedAt)
	return len(msgs), nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func snapshotMessages(a domain.Analysis) ([]kafkago.Message, error) {
	msgs := make([]kafkago.Message, 0, len(a.States)+len(a.Trend.Buckets)+1)
	for _, s := range a.States {
		msg, err := serializeToMessage(RecordState, "state:"+s.State, s, a.GeneratedAt)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	for _, b := range a.Trend.Buckets {
		msg, err := serializeToMessage(RecordMonth, "month:"+b.Month.Format(monthKeyLayout), b, a.GeneratedAt)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	sum := summary{
		GeneratedAt: a.GeneratedAt,
		Stats:       a.Stats,
		States:      len(a.States),
		Counties:    len(a.Counties),
		TrendMean:   a.Trend.Mean,
	}
	sum.Correlation.Valid = a.Correlation.Valid
	sum.Correlation.Slope = a.Correlation.Slope
	sum.Correlation.Intercept = a.Correlation.Intercept
	sum.Correlation.R = a.Correlation.R
	msg, err := serializeToMessage(RecordSummary, RecordSummary, sum, a.GeneratedAt)
	if err != nil {
		return nil, err
	}
	return append(msgs, msg), nil
}

// serializeToMessage marshals one snapshot record into a Kafka message.
func serializeToMessage(recordType, key string, v any, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s record: %w", recordType, err)
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "record_type", Value: []byte(recordType)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
