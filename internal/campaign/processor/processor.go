package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outreach-server/internal/events"
	"outreach-server/internal/lifecycle"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

// CampaignStore defines the database operations required by CampaignProcessor
type CampaignStore interface {
	CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error)
	GetCampaignByID(ctx context.Context, id uuid.UUID) (store.Campaign, error)
	ListCampaigns(ctx context.Context, status *string) ([]store.Campaign, error)
	UpdateCampaignStatus(ctx context.Context, id uuid.UUID, from, to string) (store.Campaign, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) (store.Campaign, error)
	ListDrafts(ctx context.Context, params store.ListDraftsParams) ([]store.DraftDetail, error)
}

type Auditor interface {
	Record(ctx context.Context, entry events.Entry) error
}

var (
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrNameAlreadyExists     = errors.New("campaign name already exists")
	ErrNameRequired          = errors.New("campaign name is required")
	ErrInvalidCampaignStatus = errors.New("invalid campaign status")
	ErrInvalidTransition     = errors.New("invalid campaign status transition")
	ErrStatusChanged         = errors.New("campaign status changed concurrently")
	ErrFailedQuery           = errors.New("failed to load campaigns")
	ErrFailedUpdate          = errors.New("failed to update campaign")
)

type CampaignProcessor struct {
	store   CampaignStore
	auditor Auditor
	logger  *observability.Logger
}

func New(store CampaignStore, auditor Auditor, logger *observability.Logger) CampaignProcessor {
	return CampaignProcessor{
		store:   store,
		auditor: auditor,
		logger:  logger,
	}
}

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	Name        string
	Description *string
}

// CampaignDetail is a campaign together with the drafts assigned to it
type CampaignDetail struct {
	store.Campaign
	Drafts []store.DraftDetail `json:"drafts"`
}

// CreateCampaign creates a new active campaign
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, createdBy uuid.UUID, params CreateCampaignParams) (store.Campaign, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return store.Campaign{}, ErrNameRequired
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_name", Value: name})

	campaign, err := p.store.CreateCampaign(ctx, store.CreateCampaignParams{
		Name:        name,
		Description: params.Description,
		CreatedBy:   &createdBy,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.Campaign{}, ErrNameAlreadyExists
		}
		p.logger.Error(ctx, "failed to create campaign", err)
		return store.Campaign{}, ErrFailedUpdate
	}

	p.audit(ctx, createdBy, store.AuditActionCampaignCreated, campaign.ID, map[string]interface{}{"name": campaign.Name})
	p.logger.Info(ctx, "campaign created")

	return campaign, nil
}

// ListCampaigns returns campaigns newest first, optionally filtered by status
func (p *CampaignProcessor) ListCampaigns(ctx context.Context, status *string) ([]store.Campaign, error) {
	if status != nil && !validStatus(*status) {
		return nil, ErrInvalidCampaignStatus
	}

	campaigns, err := p.store.ListCampaigns(ctx, status)
	if err != nil {
		p.logger.Error(ctx, "failed to list campaigns", err)
		return nil, ErrFailedQuery
	}
	return campaigns, nil
}

// GetCampaign returns a campaign with its drafts
func (p *CampaignProcessor) GetCampaign(ctx context.Context, campaignID uuid.UUID) (CampaignDetail, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID.String()})

	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CampaignDetail{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to get campaign", err)
		return CampaignDetail{}, ErrFailedQuery
	}

	drafts, err := p.store.ListDrafts(ctx, store.ListDraftsParams{CampaignID: &campaignID})
	if err != nil {
		p.logger.Error(ctx, "failed to list campaign drafts", err)
		return CampaignDetail{}, ErrFailedQuery
	}

	return CampaignDetail{Campaign: campaign, Drafts: drafts}, nil
}

// UpdateCampaignStatus moves a campaign along active, paused and archived.
// Completed is terminal and unreachable.
func (p *CampaignProcessor) UpdateCampaignStatus(ctx context.Context, campaignID, updatedBy uuid.UUID, status string) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
		observability.Field{Key: "campaign_status", Value: status},
	)

	if !validStatus(status) {
		return store.Campaign{}, ErrInvalidCampaignStatus
	}

	current, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to get campaign", err)
		return store.Campaign{}, ErrFailedUpdate
	}
	if err := lifecycle.Campaign.Check(current.Status, status); err != nil {
		return store.Campaign{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	campaign, err := p.store.UpdateCampaignStatus(ctx, campaignID, current.Status, status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Campaign{}, ErrCampaignNotFound
		case errors.Is(err, store.ErrStatusConflict):
			return store.Campaign{}, ErrStatusChanged
		}
		p.logger.Error(ctx, "failed to update campaign status", err)
		return store.Campaign{}, ErrFailedUpdate
	}

	p.audit(ctx, updatedBy, store.AuditActionCampaignStatusUpdated, campaign.ID, map[string]interface{}{
		"name": campaign.Name,
		"from": current.Status,
		"to":   campaign.Status,
	})
	return campaign, nil
}

// DeleteCampaign removes a campaign. Its drafts stay, unassigned.
func (p *CampaignProcessor) DeleteCampaign(ctx context.Context, campaignID, deletedBy uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID.String()})

	campaign, err := p.store.DeleteCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to delete campaign", err)
		return ErrFailedUpdate
	}

	p.audit(ctx, deletedBy, store.AuditActionCampaignDeleted, campaign.ID, map[string]interface{}{"name": campaign.Name})
	return nil
}

func (p *CampaignProcessor) audit(ctx context.Context, actorID uuid.UUID, action string, campaignID uuid.UUID, details map[string]interface{}) {
	if err := p.auditor.Record(ctx, events.Entry{
		ActorID:    &actorID,
		Action:     action,
		EntityType: store.EntityTypeCampaign,
		EntityID:   &campaignID,
		Details:    details,
	}); err != nil {
		p.logger.Error(ctx, "failed to audit campaign change", err)
	}
}

func validStatus(status string) bool {
	switch status {
	case store.CampaignStatusActive, store.CampaignStatusPaused, store.CampaignStatusCompleted, store.CampaignStatusArchived:
		return true
	}
	return false
}
