package workers

import (
	"context"

	kafka "outreach-server/internal/clients/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// EventMessage is the envelope read from the outreach topic
type EventMessage = kafka.EventMessage

// EventProcessor handles events from one consumer group. Deliveries are
// at-least-once, so Process must tolerate replays. A returned error leaves
// the offset uncommitted.
type EventProcessor interface {
	Process(ctx context.Context, event EventMessage) error
	Name() string
}

// EventConsumer feeds a topic into an EventProcessor until stopped
type EventConsumer interface {
	// Start blocks until Stop is called
	Start(ctx context.Context) error
	Stop()
}

// MessageReader is satisfied by *kafkago.Reader
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}
