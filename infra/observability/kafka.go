// Package observability ships anomaly events to Kafka.
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the reporter needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the JSON value of every published event.
type Envelope struct {
	Event string              `json:"event"`
	Level observability.Level `json:"level"`
	Attrs map[string]any      `json:"attrs,omitempty"`
	Time  time.Time           `json:"time"`
}

// KafkaReporter publishes each reported event to one topic keyed by event name.
type KafkaReporter struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
	now    func() time.Time
}

// NewKafkaReporter builds an async writer for cfg. Delivery failures are logged by
// the writer's completion callback and never reach the reporting code path.
func NewKafkaReporter(cfg *config.Kafka, logger *slog.Logger) (*KafkaReporter, error) {
	brokers := parseBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka reporter: brokers are required")
	}
	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	logger = logger.With("component", "kafka_reporter")
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("kafka publish failed", "messages", len(messages), "error", err)
			}
		},
	}
	if transport != nil {
		writer.Transport = transport
	}
	logger.Info("Kafka anomaly reporter initialized",
		"brokers", brokers,
		"topic", cfg.Topic,
		"tls_enabled", cfg.TLSEnabled,
		"sasl_enabled", cfg.SASLUsername != "",
	)
	return newKafkaReporter(writer, cfg.Topic, logger), nil
}

func newKafkaReporter(w messageWriter, topic string, logger *slog.Logger) *KafkaReporter {
	return &KafkaReporter{writer: w, topic: topic, logger: logger, now: time.Now}
}

func (r *KafkaReporter) Report(ctx context.Context, level observability.Level, event string, attrs ...any) {
	payload, err := json.Marshal(Envelope{
		Event: event,
		Level: level,
		Attrs: attrMap(attrs),
		Time:  r.now().UTC(),
	})
	if err != nil {
		r.logger.Error("failed to encode event", "event", event, "error", err)
		return
	}
	msg := kafka.Message{
		Topic: r.topic,
		Key:   []byte(event),
		Value: payload,
		Time:  r.now(),
	}
	if err := r.writer.WriteMessages(ctx, msg); err != nil {
		r.logger.Error("failed to publish event", "event", event, "error", err)
	}
}

// Close flushes pending messages.
func (r *KafkaReporter) Close() error {
	return r.writer.Close()
}

// attrMap turns slog-style key/value pairs into a map. Values that cannot be encoded
// as JSON are formatted with %v.
func attrMap(attrs []any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs)/2)
	for i := 0; i < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			key = fmt.Sprint(attrs[i])
		}
		if i+1 >= len(attrs) {
			out["!BADKEY"] = key
			break
		}
		v := attrs[i+1]
		if _, err := json.Marshal(v); err != nil {
			v = fmt.Sprintf("%v", v)
		}
		out[key] = v
	}
	return out
}

func parseBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ observability.Reporter = (*KafkaReporter)(nil)
