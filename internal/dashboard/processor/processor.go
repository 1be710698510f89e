package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"

	"outreach-server/internal/observability"
	"outreach-server/internal/store"
)

const recentActivityLimit = 7

var ErrFailedQuery = errors.New("failed to load dashboard")

type DashboardStore interface {
	GetDashboardCounts(ctx context.Context) (store.DashboardCounts, error)
	ListRecentAuditLogs(ctx context.Context, limit int) ([]store.AuditLogWithUser, error)
}

type DashboardProcessor struct {
	store  DashboardStore
	logger *observability.Logger
}

func New(store DashboardStore, logger *observability.Logger) DashboardProcessor {
	return DashboardProcessor{store: store, logger: logger}
}

// Dashboard summarizes outreach activity. Conversions are not tracked yet and
// are always zero.
type Dashboard struct {
	PagesAnalyzed   int                      `json:"pages_analyzed"`
	MessagesSent    int                      `json:"messages_sent"`
	RepliesReceived int                      `json:"replies_received"`
	Conversions     int                      `json:"conversions"`
	RecentActivity  []store.AuditLogWithUser `json:"recent_activity"`
}

func (p *DashboardProcessor) GetDashboard(ctx context.Context) (Dashboard, error) {
	counts, err := p.store.GetDashboardCounts(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to get dashboard counts", err)
		return Dashboard{}, ErrFailedQuery
	}
	activity, err := p.store.ListRecentAuditLogs(ctx, recentActivityLimit)
	if err != nil {
		p.logger.Error(ctx, "failed to list recent activity", err)
		return Dashboard{}, ErrFailedQuery
	}
	if activity == nil {
		activity = []store.AuditLogWithUser{}
	}

	return Dashboard{
		PagesAnalyzed:   counts.PagesAnalyzed,
		MessagesSent:    counts.MessagesSent,
		RepliesReceived: counts.RepliesReceived,
		RecentActivity:  activity,
	}, nil
}
