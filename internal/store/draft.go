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

// Draft is the outreach proposal generated from an analysis
type Draft struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	CampaignID   *uuid.UUID `db:"campaign_id" json:"campaign_id"`
	PageID       uuid.UUID  `db:"page_id" json:"page_id"`
	AnalysisID   uuid.UUID  `db:"analysis_id" json:"analysis_id"`
	FBMessage    string     `db:"fb_message" json:"fb_message"`
	EmailSubject string     `db:"email_subject" json:"email_subject"`
	EmailBody    string     `db:"email_body" json:"email_body"`
	PDFPath      *string    `db:"pdf_path" json:"pdf_path,omitempty"`
	Status       string     `db:"status" json:"status"`
	Version      int        `db:"version" json:"version"`
	CreatedBy    *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	ReviewedBy   *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ScheduledFor *time.Time `db:"scheduled_for" json:"scheduled_for,omitempty"`
}

// DraftDetail is a draft with the page, analysis and campaign fields shown alongside it
type DraftDetail struct {
	Draft
	PageName         string  `db:"page_name" json:"page_name"`
	PageURL          string  `db:"page_url" json:"page_url"`
	PageContactEmail *string `db:"page_contact_email" json:"page_contact_email,omitempty"`
	OverallScore     int     `db:"overall_score" json:"overall_score"`
	NeedDecision     string  `db:"need_decision" json:"need_decision"`
	CampaignName     *string `db:"campaign_name" json:"campaign_name,omitempty"`
}

type CreateDraftParams struct {
	PageID       uuid.UUID
	AnalysisID   uuid.UUID
	CampaignID   *uuid.UUID
	FBMessage    string
	EmailSubject string
	EmailBody    string
	CreatedBy    *uuid.UUID
}

type ListDraftsParams struct {
	Status     *string
	CampaignID *uuid.UUID
}

type UpdateDraftContentParams struct {
	ID           uuid.UUID
	FBMessage    string
	EmailSubject string
	EmailBody    string
	// AllowedStatuses limits which drafts may still be edited.
	AllowedStatuses []string
}

type TransitionDraftParams struct {
	ID         uuid.UUID
	From       string
	To         string
	ReviewedBy uuid.UUID
}

type SendDraftParams struct {
	ID       uuid.UUID
	SentBy   uuid.UUID
	Platform string
}

// SendDraftResult holds every row written by SendDraft
type SendDraftResult struct {
	Draft    Draft
	Message  Message
	AuditLog AuditLog
}

const draftColumns = `id, campaign_id, page_id, analysis_id, fb_message, email_subject, email_body,
    pdf_path, status, version, created_by, created_at, updated_at, reviewed_by, reviewed_at, scheduled_for`

const draftDetailSelect = `
SELECT d.id, d.campaign_id, d.page_id, d.analysis_id, d.fb_message, d.email_subject, d.email_body,
       d.pdf_path, d.status, d.version, d.created_by, d.created_at, d.updated_at, d.reviewed_by,
       d.reviewed_at, d.scheduled_for,
       p.name AS page_name, p.url AS page_url, p.contact_email AS page_contact_email,
       a.overall_score, a.need_decision,
       c.name AS campaign_name
FROM drafts d
JOIN pages p ON p.id = d.page_id
JOIN analyses a ON a.id = d.analysis_id
LEFT JOIN campaigns c ON c.id = d.campaign_id`

const sqlCreateDraft = `
INSERT INTO drafts (page_id, analysis_id, campaign_id, fb_message, email_subject, email_body, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + draftColumns

// CreateDraft inserts a pending draft. A second draft for the same analysis
// returns ErrAlreadyExists.
func (s *Store) CreateDraft(ctx context.Context, params CreateDraftParams) (Draft, error) {
	var draft Draft
	err := s.db.GetContext(ctx, &draft, sqlCreateDraft,
		params.PageID,
		params.AnalysisID,
		params.CampaignID,
		params.FBMessage,
		params.EmailSubject,
		params.EmailBody,
		params.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Draft{}, ErrAlreadyExists
		}
		s.logger.Error(ctx, "failed to create draft", err)
		return Draft{}, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

const sqlGetDraftByID = draftDetailSelect + ` WHERE d.id = $1`

func (s *Store) GetDraftByID(ctx context.Context, id uuid.UUID) (DraftDetail, error) {
	var draft DraftDetail
	err := s.db.GetContext(ctx, &draft, sqlGetDraftByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DraftDetail{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get draft by id", err)
		return DraftDetail{}, fmt.Errorf("failed to get draft by id: %w", err)
	}
	return draft, nil
}

const sqlListDrafts = draftDetailSelect + `
WHERE ($1::text IS NULL OR d.status = $1)
  AND ($2::uuid IS NULL OR d.campaign_id = $2)
ORDER BY d.created_at DESC`

func (s *Store) ListDrafts(ctx context.Context, params ListDraftsParams) ([]DraftDetail, error) {
	drafts := []DraftDetail{}
	if err := s.db.SelectContext(ctx, &drafts, sqlListDrafts, params.Status, params.CampaignID); err != nil {
		s.logger.Error(ctx, "failed to list drafts", err)
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

const sqlUpdateDraftContent = `
UPDATE drafts
SET fb_message = $2, email_subject = $3, email_body = $4,
    version = version + 1, updated_at = NOW()
WHERE id = $1 AND status = ANY($5)
RETURNING ` + draftColumns

// UpdateDraftContent saves edited text and bumps the version by one. Status is untouched.
func (s *Store) UpdateDraftContent(ctx context.Context, params UpdateDraftContentParams) (Draft, error) {
	var draft Draft
	err := s.db.GetContext(ctx, &draft, sqlUpdateDraftContent,
		params.ID,
		params.FBMessage,
		params.EmailSubject,
		params.EmailBody,
		params.AllowedStatuses,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, s.missOrConflict(ctx, "drafts", params.ID)
		}
		s.logger.Error(ctx, "failed to update draft content", err)
		return Draft{}, fmt.Errorf("failed to update draft content: %w", err)
	}
	return draft, nil
}

const sqlTransitionDraft = `
UPDATE drafts
SET status = $3, reviewed_by = $4, reviewed_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status = $2
RETURNING ` + draftColumns

// TransitionDraft moves a draft from one status to another only if it is still
// in the expected status.
func (s *Store) TransitionDraft(ctx context.Context, params TransitionDraftParams) (Draft, error) {
	var draft Draft
	err := s.db.GetContext(ctx, &draft, sqlTransitionDraft, params.ID, params.From, params.To, params.ReviewedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, s.missOrConflict(ctx, "drafts", params.ID)
		}
		s.logger.Error(ctx, "failed to transition draft", err)
		return Draft{}, fmt.Errorf("failed to transition draft: %w", err)
	}
	return draft, nil
}

const sqlInsertSentMessage = `
INSERT INTO messages (draft_id, page_id, platform, status, sent_by)
VALUES ($1, $2, $3, 'sent', $4)
RETURNING ` + messageColumns

const sqlGetPageName = `SELECT name FROM pages WHERE id = $1`

// SendDraft marks an approved draft sent and records the message and its audit
// entry in the same transaction.
func (s *Store) SendDraft(ctx context.Context, params SendDraftParams) (SendDraftResult, error) {
	var result SendDraftResult
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &result.Draft, sqlTransitionDraft,
			params.ID, DraftStatusApproved, DraftStatusSent, params.SentBy)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return s.missOrConflict(ctx, "drafts", params.ID)
			}
			s.logger.Error(ctx, "failed to mark draft sent", err)
			return fmt.Errorf("failed to mark draft sent: %w", err)
		}

		err = tx.GetContext(ctx, &result.Message, sqlInsertSentMessage,
			result.Draft.ID, result.Draft.PageID, params.Platform, params.SentBy)
		if err != nil {
			s.logger.Error(ctx, "failed to insert message", err)
			return fmt.Errorf("failed to insert message: %w", err)
		}

		var pageName string
		if err := tx.GetContext(ctx, &pageName, sqlGetPageName, result.Draft.PageID); err != nil {
			s.logger.Error(ctx, "failed to load page name", err)
			return fmt.Errorf("failed to load page name: %w", err)
		}

		sentBy := params.SentBy
		entityID := result.Draft.ID
		result.AuditLog, err = createAuditLog(ctx, tx, CreateAuditLogParams{
			UserID:     &sentBy,
			Action:     AuditActionMessageSent,
			EntityType: EntityTypeDraft,
			EntityID:   &entityID,
			Details:    JSONB{"page_name": pageName, "platform": params.Platform},
		})
		if err != nil {
			s.logger.Error(ctx, "failed to insert audit log", err)
			return err
		}
		return nil
	})
	if err != nil {
		return SendDraftResult{}, err
	}
	return result, nil
}

const sqlSetDraftCampaign = `
UPDATE drafts
SET campaign_id = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + draftColumns

// SetDraftCampaign assigns a draft to a campaign, or clears it when campaignID is nil.
func (s *Store) SetDraftCampaign(ctx context.Context, id uuid.UUID, campaignID *uuid.UUID) (Draft, error) {
	var draft Draft
	err := s.db.GetContext(ctx, &draft, sqlSetDraftCampaign, id, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return Draft{}, ErrInvalidRef
		}
		s.logger.Error(ctx, "failed to set draft campaign", err)
		return Draft{}, fmt.Errorf("failed to set draft campaign: %w", err)
	}
	return draft, nil
}
