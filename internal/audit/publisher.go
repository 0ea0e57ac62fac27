package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// Publisher emits audit events to a watermill topic. Publish failures are
// logged and swallowed; the calling flow must never fail because auditing
// did.
type Publisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
	now       func() time.Time
}

func NewPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
		now:       time.Now,
	}
}

// NewChannelPubSub creates the in-process pub/sub used when no broker is
// configured. The returned GoChannel serves as both publisher and
// subscriber.
func NewChannelPubSub(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}

// NewKafkaPublisher creates a broker-backed publisher for deployments where
// audit events feed an external pipeline.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (message.Publisher, error) {
	return kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
}

func (p *Publisher) Record(ctx context.Context, event models.AuditEvent) {
	now := p.now()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}

	env := Envelope{
		ID:        uuid.NewString(),
		Source:    Source,
		Version:   envelopeVersion,
		Timestamp: now.UnixMilli(),
		Event:     event,
	}

	payload, err := json.Marshal(env)
	if err != nil {
		p.logger.Warn("failed to marshal audit event", "action", event.Action, "error", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("action", string(event.Action))
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Warn("failed to publish audit event", "action", event.Action, "error", err)
	}
}
