package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"outreach-server/internal/access"
	"outreach-server/internal/clients/pagemeta"
	"outreach-server/internal/events"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

const (
	defaultCategory        = "Local Business"
	placeholderCoverURL    = "https://images.pexels.com/photos/3184291/pexels-photo-3184291.jpeg"
	placeholderProfileURL  = "https://images.pexels.com/photos/3184292/pexels-photo-3184292.jpeg"
	defaultHistoryPageSize = 100
)

var (
	ErrURLRequired      = errors.New("page url is required")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrForbidden        = errors.New("not allowed to access this analysis")
	ErrFailedAnalysis   = errors.New("failed to analyze page")
	ErrFailedQuery      = errors.New("failed to load analyses")
)

type AnalysisStore interface {
	UpsertPage(ctx context.Context, params store.UpsertPageParams) (store.Page, error)
	CreateAnalysis(ctx context.Context, params store.CreateAnalysisParams) (store.Analysis, error)
	TouchPageAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error
	GetAnalysisByID(ctx context.Context, id uuid.UUID) (store.AnalysisWithPage, error)
	ListAnalyses(ctx context.Context, params store.ListAnalysesParams) ([]store.AnalysisWithPage, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
}

// MetadataFetcher reads Open Graph tags from a page
type MetadataFetcher interface {
	Fetch(ctx context.Context, pageURL string) (pagemeta.Metadata, error)
}

type Auditor interface {
	Record(ctx context.Context, entry events.Entry) error
}

type AnalysisProcessor struct {
	store   AnalysisStore
	fetcher MetadataFetcher
	auditor Auditor
	scorer  Scorer
	logger  *observability.Logger
}

func New(store AnalysisStore, fetcher MetadataFetcher, auditor Auditor, scorer Scorer, logger *observability.Logger) AnalysisProcessor {
	return AnalysisProcessor{
		store:   store,
		fetcher: fetcher,
		auditor: auditor,
		scorer:  scorer,
		logger:  logger,
	}
}

type AnalyzeParams struct {
	URL string
	// PageName overrides the name read from the page or its URL
	PageName   string
	AnalyzedBy uuid.UUID
}

type AnalyzeResult struct {
	Analysis store.Analysis    `json:"analysis"`
	Page     store.Page        `json:"page"`
	Metadata pagemeta.Metadata `json:"metadata"`
}

// Analyze runs the intake pipeline: metadata, page upsert, scoring, analysis
// insert, page touch and audit. A failing step aborts the pipeline; writes
// made by earlier steps are kept.
func (p *AnalysisProcessor) Analyze(ctx context.Context, params AnalyzeParams) (AnalyzeResult, error) {
	pageURL := strings.TrimSpace(params.URL)
	if pageURL == "" {
		return AnalyzeResult{}, ErrURLRequired
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "page_url", Value: pageURL},
		observability.Field{Key: "user_id", Value: params.AnalyzedBy.String()},
	)

	meta := p.fetchMetadata(ctx, pageURL)
	page, err := p.store.UpsertPage(ctx, pageParams(pageURL, params, meta))
	if err != nil {
		p.logger.Error(ctx, "failed to upsert page", err)
		return AnalyzeResult{}, ErrFailedAnalysis
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "page_id", Value: page.ID.String()})

	score := p.scorer.Score()
	analyzedBy := params.AnalyzedBy
	analysis, err := p.store.CreateAnalysis(ctx, store.CreateAnalysisParams{
		PageID:          page.ID,
		OverallScore:    score.OverallScore,
		Issues:          score.Issues,
		Suggestions:     score.Suggestions,
		ImagesAnalyzed:  score.ImagesAnalyzed,
		NeedDecision:    score.NeedDecision,
		ConfidenceScore: score.ConfidenceScore,
		Rationale:       score.Rationale,
		AnalyzedBy:      &analyzedBy,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create analysis", err)
		return AnalyzeResult{}, ErrFailedAnalysis
	}

	if err := p.store.TouchPageAnalyzed(ctx, page.ID, analysis.AnalysisDate); err != nil {
		p.logger.Error(ctx, "failed to update page last analyzed time", err)
		return AnalyzeResult{}, ErrFailedAnalysis
	}

	pageID := page.ID
	if err := p.auditor.Record(ctx, events.Entry{
		ActorID:    &analyzedBy,
		Action:     store.AuditActionPageAnalyzed,
		EntityType: store.EntityTypePage,
		EntityID:   &pageID,
		Details:    map[string]interface{}{"page_name": page.Name, "score": analysis.OverallScore},
	}); err != nil {
		p.logger.Error(ctx, "failed to audit page analysis", err)
		return AnalyzeResult{}, ErrFailedAnalysis
	}

	observability.PagesAnalyzed.WithLabelValues(analysis.NeedDecision).Inc()
	p.logger.Info(ctx, "page analyzed")

	return AnalyzeResult{Analysis: analysis, Page: page, Metadata: meta}, nil
}

func (p *AnalysisProcessor) fetchMetadata(ctx context.Context, pageURL string) pagemeta.Metadata {
	if p.fetcher == nil {
		return pagemeta.Metadata{}
	}
	meta, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.logger.Warn(ctx, "page metadata unavailable, deriving name from url")
		return pagemeta.Metadata{}
	}
	return meta
}

func pageParams(pageURL string, params AnalyzeParams, meta pagemeta.Metadata) store.UpsertPageParams {
	name := strings.TrimSpace(params.PageName)
	if name == "" {
		name = meta.Title
	}
	if name == "" {
		name = PageNameFromURL(pageURL)
	}

	category := defaultCategory
	cover := placeholderCoverURL
	if meta.ImageURL != "" {
		cover = meta.ImageURL
	}
	profile := placeholderProfileURL
	createdBy := params.AnalyzedBy

	out := store.UpsertPageParams{
		URL:             pageURL,
		Name:            name,
		Category:        &category,
		CoverImageURL:   &cover,
		ProfileImageURL: &profile,
		CreatedBy:       &createdBy,
	}
	if meta.Description != "" {
		about := meta.Description
		out.About = &about
	}
	return out
}

// ListAnalyses returns the caller's history, or everyone's when all is set
// and the caller is an admin.
func (p *AnalysisProcessor) ListAnalyses(ctx context.Context, callerID uuid.UUID, caller access.Principal, all bool) ([]store.AnalysisWithPage, error) {
	params := store.ListAnalysesParams{Limit: defaultHistoryPageSize}
	if !all || caller.Role != access.RoleAdmin {
		params.AnalyzedBy = &callerID
	}

	analyses, err := p.store.ListAnalyses(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list analyses", err)
		return nil, ErrFailedQuery
	}
	return analyses, nil
}

func (p *AnalysisProcessor) GetAnalysis(ctx context.Context, id uuid.UUID) (store.AnalysisWithPage, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "analysis_id", Value: id.String()})

	analysis, err := p.store.GetAnalysisByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AnalysisWithPage{}, ErrAnalysisNotFound
		}
		p.logger.Error(ctx, "failed to get analysis", err)
		return store.AnalysisWithPage{}, ErrFailedQuery
	}
	return analysis, nil
}

// DeleteAnalysis removes an analysis and, through the schema, its draft.
// Only the analyst who ran it or an admin may delete it.
func (p *AnalysisProcessor) DeleteAnalysis(ctx context.Context, id, callerID uuid.UUID, caller access.Principal) error {
	analysis, err := p.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}
	owner := analysis.AnalyzedBy != nil && *analysis.AnalyzedBy == callerID
	if !owner && caller.Role != access.RoleAdmin {
		return ErrForbidden
	}

	if err := p.store.DeleteAnalysis(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAnalysisNotFound
		}
		p.logger.Error(ctx, "failed to delete analysis", err)
		return ErrFailedQuery
	}

	if err := p.auditor.Record(ctx, events.Entry{
		ActorID:    &callerID,
		Action:     store.AuditActionAnalysisDeleted,
		EntityType: store.EntityTypeAnalysis,
		EntityID:   &id,
		Details:    map[string]interface{}{"page_name": analysis.PageName},
	}); err != nil {
		p.logger.Error(ctx, "failed to audit analysis deletion", err)
	}
	return nil
}
