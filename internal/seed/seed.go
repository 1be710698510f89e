// Package seed loads the demo workspace: two staff accounts, two pages with
// an analysis and a pending draft each, and one campaign.
package seed

//go:generate go run go.uber.org/mock/mockgen@latest -source=seed.go -destination=mocks_test.go -package=seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	analysisProcessor "outreach-server/internal/analysis/processor"
	draftProcessor "outreach-server/internal/drafts/processor"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoPassword = "demo123"
	CampaignName = "Q4 2025 Outreach"
)

type demoUser struct {
	email string
	name  string
	role  string
}

type demoPage struct {
	url      string
	name     string
	category string
	about    string
}

var demoUsers = []demoUser{
	{email: "admin@minimind.agency", name: "Admin User", role: store.UserRoleAdmin},
	{email: "moderator@minimind.agency", name: "Moderator User", role: store.UserRoleModerator},
}

var demoPages = []demoPage{
	{url: "https://facebook.com/localcafe", name: "Local Cafe", category: "Restaurant", about: "Neighborhood coffee and pastries."},
	{url: "https://facebook.com/fitnessstudio", name: "Fitness Studio", category: "Health & Fitness", about: "Group classes and personal training."},
}

type SeedStore interface {
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	CreateUserWithIdentity(ctx context.Context, params store.CreateUserParams) (store.User, error)
	UpsertPage(ctx context.Context, params store.UpsertPageParams) (store.Page, error)
	GetLatestAnalysisForPage(ctx context.Context, pageID uuid.UUID) (store.AnalysisWithPage, error)
	CreateAnalysis(ctx context.Context, params store.CreateAnalysisParams) (store.Analysis, error)
	TouchPageAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateDraft(ctx context.Context, params store.CreateDraftParams) (store.Draft, error)
	UpsertCampaignByName(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error)
}

// Summary reports what a seed run created. Rows that already existed are not counted.
type Summary struct {
	UsersCreated    int
	PagesSeeded     int
	AnalysesCreated int
	DraftsCreated   int
	Campaign        store.Campaign
}

type Seeder struct {
	store      SeedStore
	scorer     analysisProcessor.Scorer
	agencyName string
	logger     *observability.Logger
}

func New(store SeedStore, scorer analysisProcessor.Scorer, agencyName string, logger *observability.Logger) Seeder {
	return Seeder{
		store:      store,
		scorer:     scorer,
		agencyName: agencyName,
		logger:     logger,
	}
}

// Run is idempotent on user emails, page URLs and the campaign name.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	var adminID uuid.UUID
	for _, u := range demoUsers {
		user, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return summary, err
		}
		if created {
			summary.UsersCreated++
		}
		if u.role == store.UserRoleAdmin {
			adminID = user.ID
		}
	}

	for _, p := range demoPages {
		analyses, drafts, err := s.ensurePage(ctx, p, adminID)
		if err != nil {
			return summary, err
		}
		summary.PagesSeeded++
		summary.AnalysesCreated += analyses
		summary.DraftsCreated += drafts
	}

	description := "Seasonal outreach to local businesses"
	campaign, err := s.store.UpsertCampaignByName(ctx, store.CreateCampaignParams{
		Name:        CampaignName,
		Description: &description,
		CreatedBy:   &adminID,
	})
	if err != nil {
		return summary, fmt.Errorf("failed to seed campaign: %w", err)
	}
	summary.Campaign = campaign

	s.logger.Info(ctx, fmt.Sprintf("seeded %d users, %d analyses, %d drafts",
		summary.UsersCreated, summary.AnalysesCreated, summary.DraftsCreated))
	return summary, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u demoUser) (store.User, bool, error) {
	existing, err := s.store.GetUserByEmail(ctx, u.email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.User{}, false, fmt.Errorf("failed to look up %s: %w", u.email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return store.User{}, false, fmt.Errorf("failed to hash demo password: %w", err)
	}
	user, err := s.store.CreateUserWithIdentity(ctx, store.CreateUserParams{
		Email:          u.email,
		Name:           u.name,
		HashedPassword: string(hashed),
		Role:           u.role,
		Status:         store.UserStatusActive,
	})
	if err != nil {
		return store.User{}, false, fmt.Errorf("failed to create %s: %w", u.email, err)
	}
	return user, true, nil
}

// ensurePage upserts the page and gives it one analysis with a pending draft
// unless it already has an analysis.
func (s *Seeder) ensurePage(ctx context.Context, p demoPage, adminID uuid.UUID) (int, int, error) {
	category, about := p.category, p.about
	page, err := s.store.UpsertPage(ctx, store.UpsertPageParams{
		URL:       p.url,
		Name:      p.name,
		Category:  &category,
		About:     &about,
		CreatedBy: &adminID,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to seed page %s: %w", p.url, err)
	}

	_, err = s.store.GetLatestAnalysisForPage(ctx, page.ID)
	if err == nil {
		return 0, 0, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, 0, fmt.Errorf("failed to check analyses for %s: %w", p.url, err)
	}

	score := s.scorer.Score()
	analysis, err := s.store.CreateAnalysis(ctx, store.CreateAnalysisParams{
		PageID:          page.ID,
		OverallScore:    score.OverallScore,
		Issues:          score.Issues,
		Suggestions:     score.Suggestions,
		ImagesAnalyzed:  score.ImagesAnalyzed,
		NeedDecision:    score.NeedDecision,
		ConfidenceScore: score.ConfidenceScore,
		Rationale:       score.Rationale,
		AnalyzedBy:      &adminID,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to seed analysis for %s: %w", p.url, err)
	}
	if err := s.store.TouchPageAnalyzed(ctx, page.ID, analysis.AnalysisDate); err != nil {
		return 1, 0, fmt.Errorf("failed to touch page %s: %w", p.url, err)
	}

	proposal := draftProcessor.ComposeProposal(page.Name, analysis.Issues, s.agencyName)
	if _, err := s.store.CreateDraft(ctx, store.CreateDraftParams{
		PageID:       page.ID,
		AnalysisID:   analysis.ID,
		FBMessage:    proposal.FBMessage,
		EmailSubject: proposal.EmailSubject,
		EmailBody:    proposal.EmailBody,
		CreatedBy:    &adminID,
	}); err != nil {
		return 1, 0, fmt.Errorf("failed to seed draft for %s: %w", p.url, err)
	}
	return 1, 1, nil
}
