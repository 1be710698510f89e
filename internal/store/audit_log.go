package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Audit actions, stored verbatim in audit_logs.action
const (
	AuditActionPageAnalyzed          = "Page Analyzed"
	AuditActionProposalCreated       = "Proposal Created"
	AuditActionDraftEdited           = "Draft Edited"
	AuditActionDraftApproved         = "Draft Approved"
	AuditActionDraftRejected         = "Draft Rejected"
	AuditActionDraftCampaignSet      = "Draft Campaign Updated"
	AuditActionMessageSent           = "Message Sent"
	AuditActionCampaignCreated       = "Campaign Created"
	AuditActionCampaignStatusUpdated = "Campaign Status Updated"
	AuditActionCampaignDeleted       = "Campaign Deleted"
	AuditActionSettingsUpdated       = "Settings Updated"
	AuditActionUserApproved          = "User Approved"
	AuditActionUserRejected          = "User Rejected"
	AuditActionUserBanned            = "User Banned"
	AuditActionUserUnbanned          = "User Unbanned"
	AuditActionUserRoleChanged       = "User Role Changed"
	AuditActionUserDeleted           = "User Deleted"
	AuditActionAnalysisDeleted       = "Analysis Deleted"
)

type AuditLog struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UserID     *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Action     string     `db:"action" json:"action"`
	EntityType *string    `db:"entity_type" json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `db:"entity_id" json:"entity_id,omitempty"`
	Details    JSONB      `db:"details" json:"details,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// AuditLogWithUser carries the actor's display name for activity feeds
type AuditLogWithUser struct {
	AuditLog
	UserName *string `db:"user_name" json:"user_name,omitempty"`
}

type CreateAuditLogParams struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Details    JSONB
}

const auditLogColumns = `id, user_id, action, entity_type, entity_id, details, created_at`

const sqlCreateAuditLog = `
INSERT INTO audit_logs (user_id, action, entity_type, entity_id, details)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)
RETURNING ` + auditLogColumns

func (s *Store) CreateAuditLog(ctx context.Context, params CreateAuditLogParams) (AuditLog, error) {
	log, err := createAuditLog(ctx, s.db, params)
	if err != nil {
		s.logger.Error(ctx, "failed to create audit log", err)
		return AuditLog{}, err
	}
	return log, nil
}

func createAuditLog(ctx context.Context, q sqlx.QueryerContext, params CreateAuditLogParams) (AuditLog, error) {
	var log AuditLog
	err := sqlx.GetContext(ctx, q, &log, sqlCreateAuditLog,
		params.UserID,
		params.Action,
		params.EntityType,
		params.EntityID,
		params.Details,
	)
	if err != nil {
		return AuditLog{}, fmt.Errorf("failed to create audit log: %w", err)
	}
	return log, nil
}

const sqlListRecentAuditLogs = `
SELECT l.id, l.user_id, l.action, l.entity_type, l.entity_id, l.details, l.created_at,
       u.name AS user_name
FROM audit_logs l
LEFT JOIN users u ON u.id = l.user_id
ORDER BY l.created_at DESC
LIMIT $1`

func (s *Store) ListRecentAuditLogs(ctx context.Context, limit int) ([]AuditLogWithUser, error) {
	logs := []AuditLogWithUser{}
	if err := s.db.SelectContext(ctx, &logs, sqlListRecentAuditLogs, limit); err != nil {
		s.logger.Error(ctx, "failed to list audit logs", err)
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
