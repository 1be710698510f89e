package processor

import (
	"context"
	"sync"
	"time"

	"outreach-server/internal/events"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

// memoryStore keeps drafts, analyses and messages in maps and applies the
// same compare-and-set rules as the SQL store.
type memoryStore struct {
	mu        sync.Mutex
	analyses  map[uuid.UUID]store.AnalysisWithPage
	drafts    map[uuid.UUID]store.Draft
	messages  []store.Message
	auditLogs []store.AuditLog
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		analyses: map[uuid.UUID]store.AnalysisWithPage{},
		drafts:   map[uuid.UUID]store.Draft{},
	}
}

func (s *memoryStore) addAnalysis(a store.AnalysisWithPage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
}

func (s *memoryStore) GetAnalysisByID(_ context.Context, id uuid.UUID) (store.AnalysisWithPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.analyses[id]
	if !ok {
		return store.AnalysisWithPage{}, store.ErrNotFound
	}
	a.HasDraft = s.hasDraft(id)
	return a, nil
}

func (s *memoryStore) hasDraft(analysisID uuid.UUID) bool {
	for _, d := range s.drafts {
		if d.AnalysisID == analysisID {
			return true
		}
	}
	return false
}

func (s *memoryStore) ListDraftCandidates(_ context.Context) ([]store.AnalysisWithPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []store.AnalysisWithPage{}
	for _, a := range s.analyses {
		if a.NeedDecision != store.DecisionNo && !s.hasDraft(a.ID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memoryStore) CreateDraft(_ context.Context, params store.CreateDraftParams) (store.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasDraft(params.AnalysisID) {
		return store.Draft{}, store.ErrAlreadyExists
	}
	now := time.Now()
	d := store.Draft{
		ID:           uuid.New(),
		PageID:       params.PageID,
		AnalysisID:   params.AnalysisID,
		CampaignID:   params.CampaignID,
		FBMessage:    params.FBMessage,
		EmailSubject: params.EmailSubject,
		EmailBody:    params.EmailBody,
		Status:       store.DraftStatusPending,
		Version:      1,
		CreatedBy:    params.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.drafts[d.ID] = d
	return d, nil
}

func (s *memoryStore) GetDraftByID(_ context.Context, id uuid.UUID) (store.DraftDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return store.DraftDetail{}, store.ErrNotFound
	}
	a := s.analyses[d.AnalysisID]
	return store.DraftDetail{Draft: d, PageName: a.PageName, PageURL: a.PageURL, OverallScore: a.OverallScore, NeedDecision: a.NeedDecision}, nil
}

func (s *memoryStore) ListDrafts(ctx context.Context, params store.ListDraftsParams) ([]store.DraftDetail, error) {
	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(s.drafts))
	for id, d := range s.drafts {
		if params.Status != nil && d.Status != *params.Status {
			continue
		}
		ids = append(ids, id)
	}
	s.mu.Unlock()

	out := []store.DraftDetail{}
	for _, id := range ids {
		d, _ := s.GetDraftByID(ctx, id)
		out = append(out, d)
	}
	return out, nil
}

func (s *memoryStore) UpdateDraftContent(_ context.Context, params store.UpdateDraftContentParams) (store.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[params.ID]
	if !ok {
		return store.Draft{}, store.ErrNotFound
	}
	allowed := false
	for _, st := range params.AllowedStatuses {
		if st == d.Status {
			allowed = true
		}
	}
	if !allowed {
		return store.Draft{}, store.ErrStatusConflict
	}
	d.FBMessage = params.FBMessage
	d.EmailSubject = params.EmailSubject
	d.EmailBody = params.EmailBody
	d.Version++
	s.drafts[d.ID] = d
	return d, nil
}

func (s *memoryStore) TransitionDraft(_ context.Context, params store.TransitionDraftParams) (store.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionLocked(params.ID, params.From, params.To, params.ReviewedBy)
}

func (s *memoryStore) transitionLocked(id uuid.UUID, from, to string, by uuid.UUID) (store.Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return store.Draft{}, store.ErrNotFound
	}
	if d.Status != from {
		return store.Draft{}, store.ErrStatusConflict
	}
	now := time.Now()
	d.Status = to
	d.ReviewedBy = &by
	d.ReviewedAt = &now
	s.drafts[id] = d
	return d, nil
}

func (s *memoryStore) SendDraft(_ context.Context, params store.SendDraftParams) (store.SendDraftResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.transitionLocked(params.ID, store.DraftStatusApproved, store.DraftStatusSent, params.SentBy)
	if err != nil {
		return store.SendDraftResult{}, err
	}
	draftID := d.ID
	sentBy := params.SentBy
	msg := store.Message{
		ID:       uuid.New(),
		DraftID:  &draftID,
		PageID:   d.PageID,
		Platform: params.Platform,
		Status:   store.MessageStatusSent,
		SentAt:   time.Now(),
		SentBy:   &sentBy,
	}
	s.messages = append(s.messages, msg)
	entityType := store.EntityTypeDraft
	log := store.AuditLog{
		ID:         uuid.New(),
		UserID:     &sentBy,
		Action:     store.AuditActionMessageSent,
		EntityType: &entityType,
		EntityID:   &draftID,
		Details:    store.JSONB{"page_name": s.analyses[d.AnalysisID].PageName, "platform": params.Platform},
		CreatedAt:  time.Now(),
	}
	s.auditLogs = append(s.auditLogs, log)
	return store.SendDraftResult{Draft: d, Message: msg, AuditLog: log}, nil
}

func (s *memoryStore) SetDraftCampaign(_ context.Context, id uuid.UUID, campaignID *uuid.UUID) (store.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return store.Draft{}, store.ErrNotFound
	}
	d.CampaignID = campaignID
	s.drafts[id] = d
	return d, nil
}

// memoryAuditor collects recorded entries and published rows
type memoryAuditor struct {
	mu        sync.Mutex
	entries   []events.Entry
	published []store.AuditLog
}

func (a *memoryAuditor) Record(_ context.Context, entry events.Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

func (a *memoryAuditor) Publish(_ context.Context, log store.AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.published = append(a.published, log)
}

func (a *memoryAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}
