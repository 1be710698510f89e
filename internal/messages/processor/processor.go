package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrMessageNotFound       = errors.New("message not found")
	ErrReplyNotFound         = errors.New("reply not found")
	ErrEmptyReply            = errors.New("reply content is empty")
	ErrInvalidClassification = errors.New("invalid reply classification")
	ErrInvalidPlatform       = errors.New("invalid reply platform")
	ErrInvalidConfidence     = errors.New("reply confidence must be between 0 and 1")
	ErrFailedQuery           = errors.New("failed to load messages")
	ErrFailedUpdate          = errors.New("failed to update reply")
)

type MessageStore interface {
	ListMessageThreads(ctx context.Context) ([]store.MessageThread, error)
	GetMessageByID(ctx context.Context, id uuid.UUID) (store.Message, error)
	CreateReply(ctx context.Context, params store.CreateReplyParams) (store.Reply, error)
	MarkReplyRead(ctx context.Context, id uuid.UUID) (store.Reply, error)
}

type MessageProcessor struct {
	store  MessageStore
	logger *observability.Logger
}

func New(store MessageStore, logger *observability.Logger) MessageProcessor {
	return MessageProcessor{store: store, logger: logger}
}

// IngestReplyParams describes one inbound reply. Empty optional fields are
// filled from the message and the keyword classifier.
type IngestReplyParams struct {
	MessageID      uuid.UUID
	Content        string
	Platform       string
	Classification string
	Confidence     *float64
	ExternalID     string
	ReceivedAt     time.Time
}

func (p *MessageProcessor) ListThreads(ctx context.Context) ([]store.MessageThread, error) {
	threads, err := p.store.ListMessageThreads(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list message threads", err)
		return nil, ErrFailedQuery
	}
	return threads, nil
}

func (p *MessageProcessor) MarkReplyRead(ctx context.Context, replyID uuid.UUID) (store.Reply, error) {
	reply, err := p.store.MarkReplyRead(ctx, replyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Reply{}, ErrReplyNotFound
		}
		p.logger.Error(ctx, "failed to mark reply read", err)
		return store.Reply{}, ErrFailedUpdate
	}
	return reply, nil
}

// IngestReply stores a reply against its message. Replays of an external id
// already stored are reported as (zero, false, nil).
func (p *MessageProcessor) IngestReply(ctx context.Context, params IngestReplyParams) (store.Reply, bool, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "message_id", Value: params.MessageID.String()})

	content := strings.TrimSpace(params.Content)
	if content == "" {
		return store.Reply{}, false, ErrEmptyReply
	}
	// NaN fails both comparisons
	if c := params.Confidence; c != nil && !(*c >= 0 && *c <= 1) {
		return store.Reply{}, false, ErrInvalidConfidence
	}

	message, err := p.store.GetMessageByID(ctx, params.MessageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Reply{}, false, ErrMessageNotFound
		}
		p.logger.Error(ctx, "failed to get message", err)
		return store.Reply{}, false, ErrFailedUpdate
	}

	classification, confidence := params.Classification, params.Confidence
	if classification == "" {
		c, score := Classify(content)
		classification, confidence = c, &score
	} else if !validClassification(classification) {
		return store.Reply{}, false, ErrInvalidClassification
	}

	platform := params.Platform
	if platform == "" {
		platform = message.Platform
	}
	if platform != store.PlatformEmail && platform != store.PlatformFacebook {
		return store.Reply{}, false, ErrInvalidPlatform
	}
	receivedAt := params.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	var externalID *string
	if params.ExternalID != "" {
		externalID = &params.ExternalID
	}

	reply, err := p.store.CreateReply(ctx, store.CreateReplyParams{
		MessageID:       message.ID,
		PageID:          message.PageID,
		Platform:        platform,
		Content:         content,
		Classification:  &classification,
		ConfidenceScore: confidence,
		ReceivedAt:      receivedAt,
		ExternalID:      externalID,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.Reply{}, false, nil
		}
		p.logger.Error(ctx, "failed to create reply", err)
		return store.Reply{}, false, ErrFailedUpdate
	}

	observability.RepliesIngested.WithLabelValues(classification).Inc()
	return reply, true, nil
}

func validClassification(c string) bool {
	switch c {
	case store.ReplyClassificationPositive, store.ReplyClassificationNeutral, store.ReplyClassificationNegative,
		store.ReplyClassificationSpam, store.ReplyClassificationNeedsInfo:
		return true
	}
	return false
}
