package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	Status      string     `db:"status" json:"status"`
	PagesCount  int        `db:"pages_count" json:"pages_count"`
	SentCount   int        `db:"sent_count" json:"sent_count"`
	ReplyCount  int        `db:"reply_count" json:"reply_count"`
	CreatedBy   *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateCampaignParams struct {
	Name        string
	Description *string
	CreatedBy   *uuid.UUID
}

const campaignColumns = `id, name, description, status, pages_count, sent_count, reply_count,
    created_by, created_at, updated_at`

const sqlCreateCampaign = `
INSERT INTO campaigns (name, description, created_by)
VALUES ($1, $2, $3)
RETURNING ` + campaignColumns

// CreateCampaign inserts an active campaign. Duplicate names return ErrAlreadyExists.
func (s *Store) CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlCreateCampaign, params.Name, params.Description, params.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return Campaign{}, ErrAlreadyExists
		}
		s.logger.Error(ctx, "failed to create campaign", err)
		return Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

const sqlUpsertCampaignByName = `
INSERT INTO campaigns (name, description, created_by)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING ` + campaignColumns

// UpsertCampaignByName returns the campaign with this name, creating it if needed.
func (s *Store) UpsertCampaignByName(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlUpsertCampaignByName, params.Name, params.Description, params.CreatedBy)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert campaign", err)
		return Campaign{}, fmt.Errorf("failed to upsert campaign: %w", err)
	}
	return campaign, nil
}

const sqlGetCampaignByID = `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

func (s *Store) GetCampaignByID(ctx context.Context, id uuid.UUID) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlGetCampaignByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get campaign by id", err)
		return Campaign{}, fmt.Errorf("failed to get campaign by id: %w", err)
	}
	return campaign, nil
}

const sqlListCampaigns = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC`

func (s *Store) ListCampaigns(ctx context.Context, status *string) ([]Campaign, error) {
	campaigns := []Campaign{}
	if err := s.db.SelectContext(ctx, &campaigns, sqlListCampaigns, status); err != nil {
		s.logger.Error(ctx, "failed to list campaigns", err)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

const sqlUpdateCampaignStatus = `
UPDATE campaigns
SET status = $3, updated_at = NOW()
WHERE id = $1 AND status = $2
RETURNING ` + campaignColumns

// UpdateCampaignStatus changes status only if the campaign is still in the from status.
func (s *Store) UpdateCampaignStatus(ctx context.Context, id uuid.UUID, from, to string) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlUpdateCampaignStatus, id, from, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, s.missOrConflict(ctx, "campaigns", id)
		}
		s.logger.Error(ctx, "failed to update campaign status", err)
		return Campaign{}, fmt.Errorf("failed to update campaign status: %w", err)
	}
	return campaign, nil
}

const sqlDeleteCampaign = `DELETE FROM campaigns WHERE id = $1 RETURNING ` + campaignColumns

// DeleteCampaign removes a campaign; drafts keep existing with no campaign.
func (s *Store) DeleteCampaign(ctx context.Context, id uuid.UUID) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlDeleteCampaign, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to delete campaign", err)
		return Campaign{}, fmt.Errorf("failed to delete campaign: %w", err)
	}
	return campaign, nil
}
