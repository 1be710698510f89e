package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Analysis is one scoring run over a page
type Analysis struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	PageID          uuid.UUID   `db:"page_id" json:"page_id"`
	OverallScore    int         `db:"overall_score" json:"overall_score"`
	Issues          Issues      `db:"issues" json:"issues"`
	Suggestions     Suggestions `db:"suggestions" json:"suggestions"`
	ImagesAnalyzed  int         `db:"images_analyzed" json:"images_analyzed"`
	NeedDecision    string      `db:"need_decision" json:"need_decision"`
	ConfidenceScore float64     `db:"confidence_score" json:"confidence_score"`
	Rationale       string      `db:"rationale" json:"rationale"`
	AnalysisDate    time.Time   `db:"analysis_date" json:"analysis_date"`
	AnalyzedBy      *uuid.UUID  `db:"analyzed_by" json:"analyzed_by,omitempty"`
}

// AnalysisWithPage joins an analysis with the page it scored
type AnalysisWithPage struct {
	Analysis
	PageName     string  `db:"page_name" json:"page_name"`
	PageURL      string  `db:"page_url" json:"page_url"`
	PageCategory *string `db:"page_category" json:"page_category,omitempty"`
	HasDraft     bool    `db:"has_draft" json:"has_draft"`
}

type CreateAnalysisParams struct {
	PageID          uuid.UUID
	OverallScore    int
	Issues          Issues
	Suggestions     Suggestions
	ImagesAnalyzed  int
	NeedDecision    string
	ConfidenceScore float64
	Rationale       string
	AnalyzedBy      *uuid.UUID
}

type ListAnalysesParams struct {
	AnalyzedBy *uuid.UUID
	Limit      int
}

const analysisColumns = `id, page_id, overall_score, issues, suggestions, images_analyzed,
    need_decision, confidence_score, rationale, analysis_date, analyzed_by`

const analysisWithPageSelect = `
SELECT a.id, a.page_id, a.overall_score, a.issues, a.suggestions, a.images_analyzed,
       a.need_decision, a.confidence_score, a.rationale, a.analysis_date, a.analyzed_by,
       p.name AS page_name, p.url AS page_url, p.category AS page_category,
       EXISTS(SELECT 1 FROM drafts d WHERE d.analysis_id = a.id) AS has_draft
FROM analyses a
JOIN pages p ON p.id = a.page_id`

const sqlCreateAnalysis = `
INSERT INTO analyses (page_id, overall_score, issues, suggestions, images_analyzed,
                      need_decision, confidence_score, rationale, analyzed_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + analysisColumns

func (s *Store) CreateAnalysis(ctx context.Context, params CreateAnalysisParams) (Analysis, error) {
	var analysis Analysis
	err := s.db.GetContext(ctx, &analysis, sqlCreateAnalysis,
		params.PageID,
		params.OverallScore,
		params.Issues,
		params.Suggestions,
		params.ImagesAnalyzed,
		params.NeedDecision,
		params.ConfidenceScore,
		params.Rationale,
		params.AnalyzedBy,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create analysis", err)
		return Analysis{}, fmt.Errorf("failed to create analysis: %w", err)
	}
	return analysis, nil
}

const sqlGetAnalysisByID = analysisWithPageSelect + ` WHERE a.id = $1`

func (s *Store) GetAnalysisByID(ctx context.Context, id uuid.UUID) (AnalysisWithPage, error) {
	var analysis AnalysisWithPage
	err := s.db.GetContext(ctx, &analysis, sqlGetAnalysisByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AnalysisWithPage{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get analysis by id", err)
		return AnalysisWithPage{}, fmt.Errorf("failed to get analysis by id: %w", err)
	}
	return analysis, nil
}

const sqlListAnalyses = analysisWithPageSelect + `
WHERE ($1::uuid IS NULL OR a.analyzed_by = $1)
ORDER BY a.analysis_date DESC
LIMIT $2`

// ListAnalyses returns analyses newest first, optionally restricted to one analyst.
func (s *Store) ListAnalyses(ctx context.Context, params ListAnalysesParams) ([]AnalysisWithPage, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	analyses := []AnalysisWithPage{}
	if err := s.db.SelectContext(ctx, &analyses, sqlListAnalyses, params.AnalyzedBy, limit); err != nil {
		s.logger.Error(ctx, "failed to list analyses", err)
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

const sqlGetLatestAnalysisForPage = analysisWithPageSelect + `
WHERE a.page_id = $1
ORDER BY a.analysis_date DESC
LIMIT 1`

// GetLatestAnalysisForPage returns the newest analysis of a page.
func (s *Store) GetLatestAnalysisForPage(ctx context.Context, pageID uuid.UUID) (AnalysisWithPage, error) {
	var analysis AnalysisWithPage
	err := s.db.GetContext(ctx, &analysis, sqlGetLatestAnalysisForPage, pageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AnalysisWithPage{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get latest analysis for page", err)
		return AnalysisWithPage{}, fmt.Errorf("failed to get latest analysis for page: %w", err)
	}
	return analysis, nil
}

const sqlListDraftCandidates = analysisWithPageSelect + `
WHERE a.need_decision IN ('yes', 'maybe')
  AND NOT EXISTS(SELECT 1 FROM drafts d WHERE d.analysis_id = a.id)
ORDER BY a.analysis_date DESC`

// ListDraftCandidates returns analyses worth contacting that have no draft yet.
func (s *Store) ListDraftCandidates(ctx context.Context) ([]AnalysisWithPage, error) {
	analyses := []AnalysisWithPage{}
	if err := s.db.SelectContext(ctx, &analyses, sqlListDraftCandidates); err != nil {
		s.logger.Error(ctx, "failed to list draft candidates", err)
		return nil, fmt.Errorf("failed to list draft candidates: %w", err)
	}
	return analyses, nil
}

const sqlDeleteAnalysis = `DELETE FROM analyses WHERE id = $1`

// DeleteAnalysis removes an analysis; its draft goes with it.
func (s *Store) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteAnalysis, id)
	if err != nil {
		s.logger.Error(ctx, "failed to delete analysis", err)
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
