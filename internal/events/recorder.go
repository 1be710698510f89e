// Package events writes audit log entries and mirrors them onto the outreach
// event topic.
package events

import (
	"context"
	"fmt"
	"time"

	"outreach-server/internal/clients/kafka"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

// Event types on the outreach topic
const (
	TypePageAnalyzed          = "page.analyzed"
	TypeAnalysisDeleted       = "analysis.deleted"
	TypeProposalCreated       = "proposal.created"
	TypeDraftEdited           = "draft.edited"
	TypeDraftApproved         = "draft.approved"
	TypeDraftRejected         = "draft.rejected"
	TypeDraftCampaignSet      = "draft.campaign_updated"
	TypeMessageSent           = "message.sent"
	TypeCampaignCreated       = "campaign.created"
	TypeCampaignStatusUpdated = "campaign.status_updated"
	TypeCampaignDeleted       = "campaign.deleted"
	TypeSettingsUpdated       = "settings.updated"
	TypeUserApproved          = "user.approved"
	TypeUserRejected          = "user.rejected"
	TypeUserBanned            = "user.banned"
	TypeUserUnbanned          = "user.unbanned"
	TypeUserRoleChanged       = "user.role_changed"
	TypeUserDeleted           = "user.deleted"
	TypeReplyReceived         = "reply.received"
)

var actionTypes = map[string]string{
	store.AuditActionPageAnalyzed:          TypePageAnalyzed,
	store.AuditActionAnalysisDeleted:       TypeAnalysisDeleted,
	store.AuditActionProposalCreated:       TypeProposalCreated,
	store.AuditActionDraftEdited:           TypeDraftEdited,
	store.AuditActionDraftApproved:         TypeDraftApproved,
	store.AuditActionDraftRejected:         TypeDraftRejected,
	store.AuditActionDraftCampaignSet:      TypeDraftCampaignSet,
	store.AuditActionMessageSent:           TypeMessageSent,
	store.AuditActionCampaignCreated:       TypeCampaignCreated,
	store.AuditActionCampaignStatusUpdated: TypeCampaignStatusUpdated,
	store.AuditActionCampaignDeleted:       TypeCampaignDeleted,
	store.AuditActionSettingsUpdated:       TypeSettingsUpdated,
	store.AuditActionUserApproved:          TypeUserApproved,
	store.AuditActionUserRejected:          TypeUserRejected,
	store.AuditActionUserBanned:            TypeUserBanned,
	store.AuditActionUserUnbanned:          TypeUserUnbanned,
	store.AuditActionUserRoleChanged:       TypeUserRoleChanged,
	store.AuditActionUserDeleted:           TypeUserDeleted,
}

// TypeForAction maps an audit action to its event type. Unknown actions get
// an empty string and are not published.
func TypeForAction(action string) string {
	return actionTypes[action]
}

// Publisher is satisfied by *kafka.Producer
type Publisher interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

type AuditStore interface {
	CreateAuditLog(ctx context.Context, params store.CreateAuditLogParams) (store.AuditLog, error)
}

// Entry is one auditable action
type Entry struct {
	ActorID    *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Details    map[string]interface{}
}

type Recorder struct {
	store     AuditStore
	publisher Publisher
	logger    *observability.Logger
}

// NewRecorder builds a Recorder. A nil publisher disables event publishing.
func NewRecorder(auditStore AuditStore, publisher Publisher, logger *observability.Logger) *Recorder {
	return &Recorder{
		store:     auditStore,
		publisher: publisher,
		logger:    logger,
	}
}

// Record appends the audit row, then publishes it. Publishing failures are
// logged and do not fail the call.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "audit_action", Value: e.Action})

	log, err := r.store.CreateAuditLog(ctx, store.CreateAuditLogParams{
		UserID:     e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    store.JSONB(e.Details),
	})
	if err != nil {
		r.logger.Error(ctx, "failed to record audit log", err)
		return fmt.Errorf("failed to record audit log: %w", err)
	}

	r.Publish(ctx, log)
	return nil
}

// Publish sends an already persisted audit row to the event topic.
func (r *Recorder) Publish(ctx context.Context, log store.AuditLog) {
	if r.publisher == nil {
		return
	}
	eventType := TypeForAction(log.Action)
	if eventType == "" {
		return
	}

	if err := r.publisher.PublishEvent(ctx, ToEvent(eventType, log)); err != nil {
		r.logger.Error(ctx, "failed to publish audit event", err)
	}
}

// ToEvent builds the topic envelope for an audit row
func ToEvent(eventType string, log store.AuditLog) kafka.EventMessage {
	event := kafka.EventMessage{
		ID:        log.ID.String(),
		Type:      eventType,
		Data:      map[string]interface{}(log.Details),
		Timestamp: log.CreatedAt.UTC().Format(time.RFC3339),
	}
	if event.Data == nil {
		event.Data = map[string]interface{}{}
	}
	if log.UserID != nil {
		event.ActorID = log.UserID.String()
	}
	if log.EntityType != nil {
		event.EntityType = *log.EntityType
	}
	if log.EntityID != nil {
		event.EntityID = log.EntityID.String()
	}
	return event
}
