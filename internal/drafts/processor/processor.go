package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"

	"outreach-server/internal/events"
	"outreach-server/internal/lifecycle"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound     = errors.New("draft not found")
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrDraftExists       = errors.New("a draft already exists for this analysis")
	ErrInvalidTransition = errors.New("invalid draft status transition")
	ErrNotEditable       = errors.New("draft can no longer be edited")
	ErrStatusChanged     = errors.New("draft status changed concurrently")
	ErrFailedQuery       = errors.New("failed to load drafts")
	ErrFailedUpdate      = errors.New("failed to update draft")
)

type DraftStore interface {
	GetAnalysisByID(ctx context.Context, id uuid.UUID) (store.AnalysisWithPage, error)
	ListDraftCandidates(ctx context.Context) ([]store.AnalysisWithPage, error)
	CreateDraft(ctx context.Context, params store.CreateDraftParams) (store.Draft, error)
	GetDraftByID(ctx context.Context, id uuid.UUID) (store.DraftDetail, error)
	ListDrafts(ctx context.Context, params store.ListDraftsParams) ([]store.DraftDetail, error)
	UpdateDraftContent(ctx context.Context, params store.UpdateDraftContentParams) (store.Draft, error)
	TransitionDraft(ctx context.Context, params store.TransitionDraftParams) (store.Draft, error)
	SendDraft(ctx context.Context, params store.SendDraftParams) (store.SendDraftResult, error)
	SetDraftCampaign(ctx context.Context, id uuid.UUID, campaignID *uuid.UUID) (store.Draft, error)
}

// Auditor records audit entries and publishes rows written elsewhere
type Auditor interface {
	Record(ctx context.Context, entry events.Entry) error
	Publish(ctx context.Context, log store.AuditLog)
}

type DraftProcessor struct {
	store      DraftStore
	auditor    Auditor
	agencyName string
	logger     *observability.Logger
}

func New(store DraftStore, auditor Auditor, agencyName string, logger *observability.Logger) DraftProcessor {
	return DraftProcessor{
		store:      store,
		auditor:    auditor,
		agencyName: agencyName,
		logger:     logger,
	}
}

type UpdateContentParams struct {
	FBMessage    string
	EmailSubject string
	EmailBody    string
}

// ListCandidates returns analyses worth contacting that have no draft yet.
func (p *DraftProcessor) ListCandidates(ctx context.Context) ([]store.AnalysisWithPage, error) {
	candidates, err := p.store.ListDraftCandidates(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list draft candidates", err)
		return nil, ErrFailedQuery
	}
	return candidates, nil
}

// CreateDraft generates a pending proposal for an analysis.
func (p *DraftProcessor) CreateDraft(ctx context.Context, analysisID, createdBy uuid.UUID) (store.Draft, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "analysis_id", Value: analysisID.String()})

	analysis, err := p.store.GetAnalysisByID(ctx, analysisID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Draft{}, ErrAnalysisNotFound
		}
		p.logger.Error(ctx, "failed to get analysis", err)
		return store.Draft{}, ErrFailedUpdate
	}
	if analysis.HasDraft {
		return store.Draft{}, ErrDraftExists
	}

	proposal := ComposeProposal(analysis.PageName, analysis.Issues, p.agencyName)
	draft, err := p.store.CreateDraft(ctx, store.CreateDraftParams{
		PageID:       analysis.PageID,
		AnalysisID:   analysis.ID,
		FBMessage:    proposal.FBMessage,
		EmailSubject: proposal.EmailSubject,
		EmailBody:    proposal.EmailBody,
		CreatedBy:    &createdBy,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.Draft{}, ErrDraftExists
		}
		p.logger.Error(ctx, "failed to create draft", err)
		return store.Draft{}, ErrFailedUpdate
	}

	p.audit(ctx, createdBy, store.AuditActionProposalCreated, draft.ID,
		map[string]interface{}{"page_name": analysis.PageName, "analysis_id": analysis.ID.String()})
	p.logger.Info(ctx, "proposal created")

	return draft, nil
}

func (p *DraftProcessor) ListDrafts(ctx context.Context, params store.ListDraftsParams) ([]store.DraftDetail, error) {
	drafts, err := p.store.ListDrafts(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list drafts", err)
		return nil, ErrFailedQuery
	}
	return drafts, nil
}

func (p *DraftProcessor) GetDraft(ctx context.Context, id uuid.UUID) (store.DraftDetail, error) {
	draft, err := p.store.GetDraftByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.DraftDetail{}, ErrDraftNotFound
		}
		p.logger.Error(ctx, "failed to get draft", err)
		return store.DraftDetail{}, ErrFailedQuery
	}
	return draft, nil
}

// UpdateContent saves edited text and bumps the version by one. Drafts that
// have been rejected or sent are frozen.
func (p *DraftProcessor) UpdateContent(ctx context.Context, id, editedBy uuid.UUID, params UpdateContentParams) (store.Draft, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "draft_id", Value: id.String()})

	draft, err := p.store.UpdateDraftContent(ctx, store.UpdateDraftContentParams{
		ID:              id,
		FBMessage:       params.FBMessage,
		EmailSubject:    params.EmailSubject,
		EmailBody:       params.EmailBody,
		AllowedStatuses: lifecycle.EditableDraftStatuses,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Draft{}, ErrDraftNotFound
		case errors.Is(err, store.ErrStatusConflict):
			return store.Draft{}, ErrNotEditable
		}
		p.logger.Error(ctx, "failed to update draft content", err)
		return store.Draft{}, ErrFailedUpdate
	}

	p.audit(ctx, editedBy, store.AuditActionDraftEdited, draft.ID,
		map[string]interface{}{"version": draft.Version})
	return draft, nil
}

// SetCampaign assigns the draft to a campaign, or clears it when campaignID is nil.
func (p *DraftProcessor) SetCampaign(ctx context.Context, id, updatedBy uuid.UUID, campaignID *uuid.UUID) (store.Draft, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "draft_id", Value: id.String()})

	draft, err := p.store.SetDraftCampaign(ctx, id, campaignID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Draft{}, ErrDraftNotFound
		case errors.Is(err, store.ErrInvalidRef):
			return store.Draft{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to set draft campaign", err)
		return store.Draft{}, ErrFailedUpdate
	}

	details := map[string]interface{}{"campaign_id": nil}
	if campaignID != nil {
		details["campaign_id"] = campaignID.String()
	}
	p.audit(ctx, updatedBy, store.AuditActionDraftCampaignSet, draft.ID, details)
	return draft, nil
}

func (p *DraftProcessor) Approve(ctx context.Context, id, reviewerID uuid.UUID) (store.Draft, error) {
	return p.transition(ctx, id, reviewerID, store.DraftStatusApproved, store.AuditActionDraftApproved)
}

func (p *DraftProcessor) Reject(ctx context.Context, id, reviewerID uuid.UUID) (store.Draft, error) {
	return p.transition(ctx, id, reviewerID, store.DraftStatusRejected, store.AuditActionDraftRejected)
}

// Send records an approved draft as sent by email. The status change, the
// message row and its audit entry commit together; nothing is delivered.
func (p *DraftProcessor) Send(ctx context.Context, id, senderID uuid.UUID) (store.SendDraftResult, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "draft_id", Value: id.String()})

	current, err := p.GetDraft(ctx, id)
	if err != nil {
		return store.SendDraftResult{}, err
	}
	if err := lifecycle.Draft.Check(current.Status, store.DraftStatusSent); err != nil {
		return store.SendDraftResult{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	result, err := p.store.SendDraft(ctx, store.SendDraftParams{
		ID:       id,
		SentBy:   senderID,
		Platform: store.PlatformEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.SendDraftResult{}, ErrDraftNotFound
		case errors.Is(err, store.ErrStatusConflict):
			return store.SendDraftResult{}, ErrStatusChanged
		}
		p.logger.Error(ctx, "failed to send draft", err)
		return store.SendDraftResult{}, ErrFailedUpdate
	}

	p.auditor.Publish(ctx, result.AuditLog)
	observability.DraftTransitions.WithLabelValues(store.DraftStatusSent).Inc()
	observability.MessagesSent.WithLabelValues(result.Message.Platform).Inc()
	p.logger.Info(ctx, "draft sent")

	return result, nil
}

func (p *DraftProcessor) transition(ctx context.Context, id, reviewerID uuid.UUID, to, action string) (store.Draft, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "draft_id", Value: id.String()},
		observability.Field{Key: "draft_status", Value: to},
	)

	current, err := p.GetDraft(ctx, id)
	if err != nil {
		return store.Draft{}, err
	}
	if err := lifecycle.Draft.Check(current.Status, to); err != nil {
		return store.Draft{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	draft, err := p.store.TransitionDraft(ctx, store.TransitionDraftParams{
		ID:         id,
		From:       current.Status,
		To:         to,
		ReviewedBy: reviewerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Draft{}, ErrDraftNotFound
		case errors.Is(err, store.ErrStatusConflict):
			return store.Draft{}, ErrStatusChanged
		}
		p.logger.Error(ctx, "failed to transition draft", err)
		return store.Draft{}, ErrFailedUpdate
	}

	p.audit(ctx, reviewerID, action, draft.ID, map[string]interface{}{"page_name": current.PageName})
	observability.DraftTransitions.WithLabelValues(to).Inc()

	return draft, nil
}

// audit runs after the mutation has committed, so a failure is logged only.
func (p *DraftProcessor) audit(ctx context.Context, actorID uuid.UUID, action string, draftID uuid.UUID, details map[string]interface{}) {
	if err := p.auditor.Record(ctx, events.Entry{
		ActorID:    &actorID,
		Action:     action,
		EntityType: store.EntityTypeDraft,
		EntityID:   &draftID,
		Details:    details,
	}); err != nil {
		p.logger.Error(ctx, "failed to audit draft change", err)
	}
}
