package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixtures provides factory functions for creating test data.
// All factory methods use testify/require to fail fast on errors.
type Fixtures struct {
	t      *testing.T
	testDB *TestDB
	ctx    context.Context
}

func NewFixtures(t *testing.T, testDB *TestDB) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:      t,
		testDB: testDB,
		ctx:    context.Background(),
	}
}

// --- User Fixtures ---

type UserOpts struct {
	Email  string
	Name   string
	Role   string
	Status string
}

func DefaultUserOpts() UserOpts {
	return UserOpts{
		Email:  "user-" + uuid.New().String()[:8] + "@example.com",
		Name:   "Test User",
		Role:   UserRoleAnalyst,
		Status: UserStatusActive,
	}
}

func (f *Fixtures) CreateUser(opts ...func(*UserOpts)) User {
	f.t.Helper()
	o := DefaultUserOpts()
	for _, fn := range opts {
		fn(&o)
	}

	user, err := f.testDB.Store.CreateUserWithIdentity(f.ctx, CreateUserParams{
		Email:          o.Email,
		Name:           o.Name,
		HashedPassword: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhash12",
		Role:           o.Role,
		Status:         o.Status,
	})
	require.NoError(f.t, err, "failed to create test user")
	return user
}

// --- Page Fixtures ---

type PageOpts struct {
	URL  string
	Name string
}

func DefaultPageOpts() PageOpts {
	slug := uuid.New().String()[:8]
	return PageOpts{
		URL:  "https://facebook.com/page-" + slug,
		Name: "Page " + slug,
	}
}

func (f *Fixtures) CreatePage(opts ...func(*PageOpts)) Page {
	f.t.Helper()
	o := DefaultPageOpts()
	for _, fn := range opts {
		fn(&o)
	}

	category := "Local Business"
	page, err := f.testDB.Store.UpsertPage(f.ctx, UpsertPageParams{
		URL:      o.URL,
		Name:     o.Name,
		Category: &category,
	})
	require.NoError(f.t, err, "failed to create test page")
	return page
}

// --- Analysis Fixtures ---

type AnalysisOpts struct {
	PageID       *uuid.UUID
	Score        int
	Decision     string
	AnalyzedBy   *uuid.UUID
	IssueSummary string
}

func DefaultAnalysisOpts() AnalysisOpts {
	return AnalysisOpts{
		Score:        60,
		Decision:     DecisionYes,
		IssueSummary: "Logo is not prominent enough or is used inconsistently across recent posts.",
	}
}

// CreateAnalysis creates an analysis. If no page is specified, a new page will be created.
func (f *Fixtures) CreateAnalysis(opts ...func(*AnalysisOpts)) Analysis {
	f.t.Helper()
	o := DefaultAnalysisOpts()
	for _, fn := range opts {
		fn(&o)
	}
	if o.PageID == nil {
		page := f.CreatePage()
		o.PageID = &page.ID
	}

	analysis, err := f.testDB.Store.CreateAnalysis(f.ctx, CreateAnalysisParams{
		PageID:       *o.PageID,
		OverallScore: o.Score,
		Issues: Issues{
			{Type: "branding", Severity: SeverityHigh, Description: o.IssueSummary},
		},
		Suggestions: Suggestions{
			{Title: "Create a Brand Style Guide", Description: "Define consistent colors and fonts.", Priority: SeverityHigh},
		},
		NeedDecision:    o.Decision,
		ConfidenceScore: 0.85,
		Rationale:       "test rationale",
		AnalyzedBy:      o.AnalyzedBy,
	})
	require.NoError(f.t, err, "failed to create test analysis")
	return analysis
}

// --- Draft Fixtures ---

type DraftOpts struct {
	AnalysisID *uuid.UUID
	PageID     *uuid.UUID
	CampaignID *uuid.UUID
	Status     string
}

func DefaultDraftOpts() DraftOpts {
	return DraftOpts{Status: DraftStatusPending}
}

// CreateDraft creates a draft in the requested status. If no analysis is
// specified, a new page and analysis will be created.
func (f *Fixtures) CreateDraft(opts ...func(*DraftOpts)) Draft {
	f.t.Helper()
	o := DefaultDraftOpts()
	for _, fn := range opts {
		fn(&o)
	}
	if o.AnalysisID == nil {
		analysis := f.CreateAnalysis()
		o.AnalysisID = &analysis.ID
		o.PageID = &analysis.PageID
	}

	draft, err := f.testDB.Store.CreateDraft(f.ctx, CreateDraftParams{
		PageID:       *o.PageID,
		AnalysisID:   *o.AnalysisID,
		CampaignID:   o.CampaignID,
		FBMessage:    "Hi there",
		EmailSubject: "A design idea",
		EmailBody:    "Hi there<br><br>Best",
	})
	require.NoError(f.t, err, "failed to create test draft")

	if o.Status != DraftStatusPending {
		f.testDB.ExecSQL(f.t, `UPDATE drafts SET status = $2 WHERE id = $1`, draft.ID, o.Status)
		draft.Status = o.Status
	}
	return draft
}

// --- Campaign Fixtures ---

type CampaignOpts struct {
	Name   string
	Status string
}

func DefaultCampaignOpts() CampaignOpts {
	return CampaignOpts{
		Name:   "Campaign " + uuid.New().String()[:8],
		Status: CampaignStatusActive,
	}
}

func (f *Fixtures) CreateCampaign(opts ...func(*CampaignOpts)) Campaign {
	f.t.Helper()
	o := DefaultCampaignOpts()
	for _, fn := range opts {
		fn(&o)
	}

	campaign, err := f.testDB.Store.CreateCampaign(f.ctx, CreateCampaignParams{Name: o.Name})
	require.NoError(f.t, err, "failed to create test campaign")

	if o.Status != CampaignStatusActive {
		f.testDB.ExecSQL(f.t, `UPDATE campaigns SET status = $2 WHERE id = $1`, campaign.ID, o.Status)
		campaign.Status = o.Status
	}
	return campaign
}
