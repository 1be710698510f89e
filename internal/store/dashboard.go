package store

import (
	"context"
	"fmt"
)

type DashboardCounts struct {
	PagesAnalyzed   int `db:"pages_analyzed"`
	MessagesSent    int `db:"messages_sent"`
	RepliesReceived int `db:"replies_received"`
}

const sqlGetDashboardCounts = `
SELECT
    (SELECT COUNT(*) FROM analyses) AS pages_analyzed,
    (SELECT COUNT(*) FROM messages WHERE status = 'sent') AS messages_sent,
    (SELECT COUNT(*) FROM replies) AS replies_received`

func (s *Store) GetDashboardCounts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	if err := s.db.GetContext(ctx, &counts, sqlGetDashboardCounts); err != nil {
		s.logger.Error(ctx, "failed to get dashboard counts", err)
		return DashboardCounts{}, fmt.Errorf("failed to get dashboard counts: %w", err)
	}
	return counts, nil
}
