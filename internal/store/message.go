package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Message is an immutable record of one outreach send
type Message struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	DraftID           *uuid.UUID `db:"draft_id" json:"draft_id,omitempty"`
	PageID            uuid.UUID  `db:"page_id" json:"page_id"`
	Platform          string     `db:"platform" json:"platform"`
	PlatformMessageID *string    `db:"platform_message_id" json:"platform_message_id,omitempty"`
	Status            string     `db:"status" json:"status"`
	SentAt            time.Time  `db:"sent_at" json:"sent_at"`
	SentBy            *uuid.UUID `db:"sent_by" json:"sent_by,omitempty"`
	ErrorMessage      *string    `db:"error_message" json:"error_message,omitempty"`
}

// Reply is an inbound response to a message
type Reply struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	MessageID       uuid.UUID  `db:"message_id" json:"message_id"`
	PageID          uuid.UUID  `db:"page_id" json:"page_id"`
	Platform        string     `db:"platform" json:"platform"`
	Content         string     `db:"content" json:"content"`
	Classification  *string    `db:"classification" json:"classification,omitempty"`
	ConfidenceScore *float64   `db:"confidence_score" json:"confidence_score,omitempty"`
	ReceivedAt      time.Time  `db:"received_at" json:"received_at"`
	ReadAt          *time.Time `db:"read_at" json:"read_at,omitempty"`
	RespondedAt     *time.Time `db:"responded_at" json:"responded_at,omitempty"`
	ExternalID      *string    `db:"external_id" json:"external_id,omitempty"`
}

// MessageThread is a message with its page, originating draft text and replies
type MessageThread struct {
	Message
	PageName     string  `db:"page_name" json:"page_name"`
	FBMessage    *string `db:"fb_message" json:"fb_message,omitempty"`
	EmailSubject *string `db:"email_subject" json:"email_subject,omitempty"`
	EmailBody    *string `db:"email_body" json:"email_body,omitempty"`
	Replies      []Reply `db:"-" json:"replies"`
}

type CreateReplyParams struct {
	MessageID       uuid.UUID
	PageID          uuid.UUID
	Platform        string
	Content         string
	Classification  *string
	ConfidenceScore *float64
	ReceivedAt      time.Time
	ExternalID      *string
}

const messageColumns = `id, draft_id, page_id, platform, platform_message_id, status, sent_at, sent_by, error_message`

const replyColumns = `id, message_id, page_id, platform, content, classification, confidence_score,
    received_at, read_at, responded_at, external_id`

const sqlListMessageThreads = `
SELECT m.id, m.draft_id, m.page_id, m.platform, m.platform_message_id, m.status, m.sent_at,
       m.sent_by, m.error_message,
       p.name AS page_name,
       d.fb_message, d.email_subject, d.email_body
FROM messages m
JOIN pages p ON p.id = m.page_id
LEFT JOIN drafts d ON d.id = m.draft_id
ORDER BY m.sent_at DESC`

const sqlListRepliesForMessages = `
SELECT ` + replyColumns + `
FROM replies
WHERE message_id IN (?)
ORDER BY received_at DESC`

// ListMessageThreads returns every message newest first with its replies attached.
func (s *Store) ListMessageThreads(ctx context.Context) ([]MessageThread, error) {
	threads := []MessageThread{}
	if err := s.db.SelectContext(ctx, &threads, sqlListMessageThreads); err != nil {
		s.logger.Error(ctx, "failed to list messages", err)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if len(threads) == 0 {
		return threads, nil
	}

	ids := make([]uuid.UUID, len(threads))
	for i, t := range threads {
		ids[i] = t.ID
	}
	query, args, err := sqlx.In(sqlListRepliesForMessages, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build replies query: %w", err)
	}
	var replies []Reply
	if err := s.db.SelectContext(ctx, &replies, s.db.Rebind(query), args...); err != nil {
		s.logger.Error(ctx, "failed to list replies", err)
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	byMessage := make(map[uuid.UUID][]Reply, len(threads))
	for _, r := range replies {
		byMessage[r.MessageID] = append(byMessage[r.MessageID], r)
	}
	for i := range threads {
		threads[i].Replies = byMessage[threads[i].ID]
		if threads[i].Replies == nil {
			threads[i].Replies = []Reply{}
		}
	}
	return threads, nil
}

const sqlGetMessageByID = `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

func (s *Store) GetMessageByID(ctx context.Context, id uuid.UUID) (Message, error) {
	var message Message
	err := s.db.GetContext(ctx, &message, sqlGetMessageByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Message{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get message by id", err)
		return Message{}, fmt.Errorf("failed to get message by id: %w", err)
	}
	return message, nil
}

const sqlCreateReply = `
INSERT INTO replies (message_id, page_id, platform, content, classification, confidence_score, received_at, external_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (external_id) DO NOTHING
RETURNING ` + replyColumns

// CreateReply stores an inbound reply. A reply whose external id was already
// ingested returns ErrAlreadyExists.
func (s *Store) CreateReply(ctx context.Context, params CreateReplyParams) (Reply, error) {
	var reply Reply
	err := s.db.GetContext(ctx, &reply, sqlCreateReply,
		params.MessageID,
		params.PageID,
		params.Platform,
		params.Content,
		params.Classification,
		params.ConfidenceScore,
		params.ReceivedAt,
		params.ExternalID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reply{}, ErrAlreadyExists
		}
		s.logger.Error(ctx, "failed to create reply", err)
		return Reply{}, fmt.Errorf("failed to create reply: %w", err)
	}
	return reply, nil
}

const sqlMarkReplyRead = `
UPDATE replies
SET read_at = COALESCE(read_at, NOW())
WHERE id = $1
RETURNING ` + replyColumns

// MarkReplyRead stamps read_at once; later calls keep the first timestamp.
func (s *Store) MarkReplyRead(ctx context.Context, id uuid.UUID) (Reply, error) {
	var reply Reply
	err := s.db.GetContext(ctx, &reply, sqlMarkReplyRead, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reply{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to mark reply read", err)
		return Reply{}, fmt.Errorf("failed to mark reply read: %w", err)
	}
	return reply, nil
}
