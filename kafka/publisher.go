package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/medwear/storefront/pkg/logger"
)

// Publisher sends storefront analytics events to Kafka. A nil *Publisher is
// valid and publishes nothing, so analytics stays optional.
type Publisher struct {
	producer sarama.SyncProducer
}

// NewPublisher connects a synchronous producer to the given brokers.
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{producer: producer}, nil
}

// PublishCartItemAdded publishes a cart mutation event.
func (p *Publisher) PublishCartItemAdded(ctx context.Context, event CartItemAddedEvent) error {
	if p == nil {
		return nil
	}

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeCartItemAdded
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	return p.publish(ctx, TopicCartEvents, event.ProductID, event.EventID, event.EventType, event)
}

// PublishProductViewed publishes a detail-view event.
func (p *Publisher) PublishProductViewed(ctx context.Context, event ProductViewedEvent) error {
	if p == nil {
		return nil
	}

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeProductViewed
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	return p.publish(ctx, TopicProductViews, event.ProductID, event.EventID, event.EventType, event)
}

// publish marshals the event, injects the trace context into the message
// headers and sends synchronously.
func (p *Publisher) publish(ctx context.Context, topic, key, eventID, eventType string, event interface{}) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
	)
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(payload),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Debug(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Analytics event published")

	return nil
}

// Close closes the underlying producer.
func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
