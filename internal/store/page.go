package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Page is a Facebook business page known to the system, unique by URL
type Page struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	URL             string     `db:"url" json:"url"`
	PageID          *string    `db:"page_id" json:"page_id,omitempty"`
	Name            string     `db:"name" json:"name"`
	Category        *string    `db:"category" json:"category,omitempty"`
	ContactEmail    *string    `db:"contact_email" json:"contact_email,omitempty"`
	About           *string    `db:"about" json:"about,omitempty"`
	CoverImageURL   *string    `db:"cover_image_url" json:"cover_image_url,omitempty"`
	ProfileImageURL *string    `db:"profile_image_url" json:"profile_image_url,omitempty"`
	LastAnalyzedAt  *time.Time `db:"last_analyzed_at" json:"last_analyzed_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	CreatedBy       *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

type UpsertPageParams struct {
	URL             string
	PageID          *string
	Name            string
	Category        *string
	ContactEmail    *string
	About           *string
	CoverImageURL   *string
	ProfileImageURL *string
	CreatedBy       *uuid.UUID
}

const pageColumns = `id, url, page_id, name, category, contact_email, about, cover_image_url,
    profile_image_url, last_analyzed_at, created_at, created_by`

// The no-op update makes RETURNING yield the existing row on conflict.
const sqlUpsertPage = `
INSERT INTO pages (url, page_id, name, category, contact_email, about, cover_image_url, profile_image_url, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
RETURNING ` + pageColumns

// UpsertPage inserts a page or returns the existing row for the same URL unchanged.
func (s *Store) UpsertPage(ctx context.Context, params UpsertPageParams) (Page, error) {
	var page Page
	err := s.db.GetContext(ctx, &page, sqlUpsertPage,
		params.URL,
		params.PageID,
		params.Name,
		params.Category,
		params.ContactEmail,
		params.About,
		params.CoverImageURL,
		params.ProfileImageURL,
		params.CreatedBy,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert page", err)
		return Page{}, fmt.Errorf("failed to upsert page: %w", err)
	}
	return page, nil
}

const sqlTouchPageAnalyzed = `UPDATE pages SET last_analyzed_at = $2 WHERE id = $1`

func (s *Store) TouchPageAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := s.db.ExecContext(ctx, sqlTouchPageAnalyzed, id, at)
	if err != nil {
		s.logger.Error(ctx, "failed to update page last analyzed", err)
		return fmt.Errorf("failed to update page last analyzed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
