// Package kafka publishes interaction events to a Kafka topic after a
// unit of work commits. Publishing sits outside the transactional
// boundary: a lost event never rolls back a commit.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
)

// Event types emitted by the interaction services.
const (
	EventLikeToggled    = "like.toggled"
	EventMessageCreated = "message.created"
	EventMessageDeleted = "message.deleted"
)

// InteractionEvent is the wire format for member interaction events.
type InteractionEvent struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actorId"`
	SubjectID  string    `json:"subjectId"`            // the other member
	ResourceID string    `json:"resourceId,omitempty"` // message id when applicable
	Liked      *bool     `json:"liked,omitempty"`      // toggle outcome
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits interaction events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(event InteractionEvent) error
	Close() error
}

// Producer publishes events through a sarama synchronous producer.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a Kafka producer for the interaction event topic.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "match-service"

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: producer, topic: topic}, nil
}

func (p *Producer) Publish(event InteractionEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Key by actor so one member's events stay ordered per partition.
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ActorID),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(InteractionEvent) error { return nil }
func (NoopPublisher) Close() error                   { return nil }
