package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"outreach-server/internal/events"
	"outreach-server/internal/observability"
	"outreach-server/internal/workers"

	"github.com/google/uuid"
)

// replyEvent is the data payload of a reply.received event
type replyEvent struct {
	MessageID      string   `json:"message_id"`
	Content        string   `json:"content"`
	Platform       string   `json:"platform"`
	Classification string   `json:"classification"`
	Confidence     *float64 `json:"confidence"`
	ExternalID     string   `json:"external_id"`
	ReceivedAt     string   `json:"received_at"`
}

// ReplyEventProcessor ingests reply.received events from the outreach topic
type ReplyEventProcessor struct {
	messages *MessageProcessor
	logger   *observability.Logger
}

func NewReplyEventProcessor(messages *MessageProcessor, logger *observability.Logger) workers.EventProcessor {
	return &ReplyEventProcessor{messages: messages, logger: logger}
}

func (p *ReplyEventProcessor) Name() string {
	return "replies"
}

// Process stores the reply carried by the event. Malformed events are logged
// and acknowledged; only storage failures are returned for redelivery.
func (p *ReplyEventProcessor) Process(ctx context.Context, event workers.EventMessage) error {
	if event.Type != events.TypeReplyReceived {
		return nil
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_id", Value: event.ID},
		observability.Field{Key: "event_type", Value: event.Type},
	)

	params, err := decodeReplyEvent(event.Data)
	if err != nil {
		p.logger.Warn(ctx, fmt.Sprintf("skipping malformed reply event: %v", err))
		return nil
	}

	_, created, err := p.messages.IngestReply(ctx, params)
	switch {
	case err == nil:
	case errors.Is(err, ErrMessageNotFound), errors.Is(err, ErrEmptyReply), errors.Is(err, ErrInvalidClassification),
		errors.Is(err, ErrInvalidPlatform), errors.Is(err, ErrInvalidConfidence):
		p.logger.Warn(ctx, fmt.Sprintf("skipping reply event: %v", err))
		return nil
	default:
		return fmt.Errorf("failed to ingest reply: %w", err)
	}

	if !created {
		p.logger.Info(ctx, "reply already ingested")
	}
	return nil
}

func decodeReplyEvent(data map[string]interface{}) (IngestReplyParams, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return IngestReplyParams{}, err
	}
	var ev replyEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return IngestReplyParams{}, err
	}

	messageID, err := uuid.Parse(ev.MessageID)
	if err != nil {
		return IngestReplyParams{}, fmt.Errorf("invalid message_id %q", ev.MessageID)
	}
	params := IngestReplyParams{
		MessageID:      messageID,
		Content:        ev.Content,
		Platform:       ev.Platform,
		Classification: ev.Classification,
		Confidence:     ev.Confidence,
		ExternalID:     ev.ExternalID,
	}
	if ev.ReceivedAt != "" {
		params.ReceivedAt, err = time.Parse(time.RFC3339, ev.ReceivedAt)
		if err != nil {
			return IngestReplyParams{}, fmt.Errorf("invalid received_at %q", ev.ReceivedAt)
		}
	}
	return params, nil
}
